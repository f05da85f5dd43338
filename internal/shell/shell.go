// Package shell implements the interactive menus on top of a catalog.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/reviewshelf/internal/catalog"
	"github.com/jon4hz/reviewshelf/internal/config"
	"github.com/samber/lo"
)

// Shell drives a catalog from line-based input.
type Shell struct {
	catalog *catalog.Catalog
	in      *bufio.Reader
	out     io.Writer

	mediaTypes  []string
	writtenOnly bool

	log *log.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithMediaTypes sets the media types accepted when adding a title.
func WithMediaTypes(types []string) Option {
	return func(s *Shell) {
		if len(types) > 0 {
			s.mediaTypes = slices.Clone(types)
		}
	}
}

// WithWrittenReviewsOnly makes the review lookup list written reviews only,
// without ratings or the average.
func WithWrittenReviewsOnly(enabled bool) Option {
	return func(s *Shell) {
		s.writtenOnly = enabled
	}
}

// WithLogger sets the logger used by the shell.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		s.log = l
	}
}

// New creates a shell reading from in and writing to out.
func New(c *catalog.Catalog, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		catalog:    c,
		in:         bufio.NewReader(in),
		out:        out,
		mediaTypes: slices.Clone(config.DefaultMediaTypes),
		log:        log.Default().WithPrefix("shell"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the main menu until the user quits or the input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.println("\nOptions:")
		s.println("1. Create user profile")
		s.println("2. Login")
		s.println("3. Quit")

		choice, err := s.prompt("Enter your choice (1, 2, 3): ")
		if err != nil {
			return s.inputDone(err)
		}

		switch choice {
		case "1":
			err = s.createProfile()
		case "2":
			err = s.login(ctx)
		case "3":
			s.println(msgGoodbye)
			return nil
		default:
			s.println(msgInvalidChoice)
		}
		if err != nil {
			return s.inputDone(err)
		}
	}
}

func (s *Shell) createProfile() error {
	username, err := s.prompt("Enter username: ")
	if err != nil {
		return err
	}
	password, err := s.prompt("Enter password: ")
	if err != nil {
		return err
	}

	if _, err := s.catalog.CreateUserProfile(username, password); err != nil {
		if errors.Is(err, catalog.ErrUsernameTaken) {
			s.println(msgUsernameTaken)
			return nil
		}
		return err
	}
	s.println(profileCreated(username))
	return nil
}

func (s *Shell) login(ctx context.Context) error {
	username, err := s.prompt("Enter your username to log in: ")
	if err != nil {
		return err
	}
	password, err := s.prompt("Enter your password: ")
	if err != nil {
		return err
	}

	if _, err := s.catalog.Login(username, password); err != nil {
		if errors.Is(err, catalog.ErrInvalidCredentials) {
			s.println(msgInvalidCredentials)
			return nil
		}
		return err
	}
	s.println(welcome(username))

	return s.session(ctx)
}

// session shows the logged-in menu until the user logs out.
func (s *Shell) session(ctx context.Context) error {
	for s.catalog.CurrentUser() != nil {
		s.println("\nOptions:")
		s.println("1. Add media you've seen")
		s.println("2. Look at reviews from other users for a media")
		s.println("3. View your own reviews")
		s.println("4. Logout")

		choice, err := s.prompt("Enter your choice (1, 2, 3, 4): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.addMedia()
		case "2":
			err = s.lookupReviews(ctx)
		case "3":
			err = s.ownReviews()
		case "4":
			s.catalog.Logout()
			s.println(msgLoggedOut)
			return nil
		default:
			s.println(msgInvalidChoice)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) addMedia() error {
	title, err := s.prompt("Enter the media title: ")
	if err != nil {
		return err
	}
	mediaType, err := s.promptMediaType()
	if err != nil {
		return err
	}
	rating, err := s.promptRating()
	if err != nil {
		return err
	}
	review, err := s.prompt("Enter an optional review: ")
	if err != nil {
		return err
	}

	key := catalog.MediaKey{Title: title, Type: mediaType}
	if err := s.catalog.CurrentUser().AddToList(title, mediaType, rating, lo.ToPtr(review)); err != nil {
		if errors.Is(err, catalog.ErrAlreadyAdded) {
			s.println(alreadyAdded(key))
			return nil
		}
		return err
	}
	s.println(addedToList(key))
	return nil
}

func (s *Shell) lookupReviews(ctx context.Context) error {
	title, err := s.prompt("Enter the media title to get reviews: ")
	if err != nil {
		return err
	}
	// the type is taken as typed, unlike when adding a title
	mediaType, err := s.prompt("Enter the media type to get reviews: ")
	if err != nil {
		return err
	}

	if s.writtenOnly {
		return s.writtenReviews(title, mediaType)
	}
	return s.reviews(ctx, title, mediaType)
}

func (s *Shell) reviews(ctx context.Context, title, mediaType string) error {
	key := catalog.MediaKey{Title: title, Type: mediaType}

	summary, err := s.catalog.GetReviews(ctx, title, mediaType)
	if err != nil {
		if errors.Is(err, catalog.ErrNoReviews) {
			s.println(noReviews(key))
			return nil
		}
		return err
	}

	s.println(reviewsHeader(key))
	for _, r := range summary.Reviews {
		s.println(ratedReview(r))
	}
	s.println(averageRating(summary.Average))
	return nil
}

func (s *Shell) writtenReviews(title, mediaType string) error {
	key := catalog.MediaKey{Title: title, Type: mediaType}

	reviews, err := s.catalog.GetWrittenReviews(title, mediaType)
	if err != nil {
		if errors.Is(err, catalog.ErrNoWrittenReviews) {
			s.println(noWrittenReviews(key))
			return nil
		}
		return err
	}

	s.println(writtenReviewsHeader(key))
	for _, r := range reviews {
		s.println(writtenReview(r))
	}
	return nil
}

func (s *Shell) ownReviews() error {
	entries, err := s.catalog.ViewOwnReviews()
	if err != nil {
		if errors.Is(err, catalog.ErrNotLoggedIn) {
			s.println(msgLoginRequired)
			return nil
		}
		return err
	}

	s.println("\nYour Reviews:")
	for _, e := range entries {
		s.println(ownReview(e))
	}
	return nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

// inputDone turns the end of input into a clean exit.
func (s *Shell) inputDone(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Debug("input closed, leaving")
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}
