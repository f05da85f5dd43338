package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jon4hz/reviewshelf/internal/validation"
	"github.com/samber/lo"
)

// prompt prints the prompt and reads one line of input without its line ending.
// A final line without a newline is still returned; io.EOF follows on the next call.
func (s *Shell) prompt(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// promptRating asks until it gets a whole number between 1 and 5.
func (s *Shell) promptRating() (int, error) {
	for {
		input, err := s.prompt("Enter the rating (1-5): ")
		if err != nil {
			return 0, err
		}

		rating, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			s.println(msgInvalidNumber)
			continue
		}
		if err := validation.Var(rating, "gte=1,lte=5"); err != nil {
			s.println(msgInvalidRating)
			continue
		}
		return rating, nil
	}
}

// promptMediaType asks until the input matches one of the configured media
// types, ignoring case. The configured casing is returned.
func (s *Shell) promptMediaType() (string, error) {
	choices := strings.Join(s.mediaTypes, ", ")
	for {
		input, err := s.prompt(fmt.Sprintf("Enter the media type (%s): ", choices))
		if err != nil {
			return "", err
		}

		mediaType, ok := lo.Find(s.mediaTypes, func(t string) bool {
			return strings.EqualFold(t, input)
		})
		if ok {
			return mediaType, nil
		}
		s.println(fmt.Sprintf("Invalid media type. Please enter a valid media type (%s)", choices))
	}
}
