package shell

import (
	"fmt"

	"github.com/jon4hz/reviewshelf/internal/catalog"
)

const (
	msgInvalidChoice      = "Invalid choice. Please enter a valid option."
	msgGoodbye            = "Goodbye!"
	msgUsernameTaken      = "Username already exists. Please choose another."
	msgInvalidCredentials = "Invalid username or password."
	msgLoggedOut          = "Logged out successfully."
	msgLoginRequired      = "Please log in to view your reviews."
	msgInvalidNumber      = "Invalid input. Please enter a valid number."
	msgInvalidRating      = "Invalid rating. Please enter a number between 1 and 5."
)

// reviewText renders an optional review, "None" if there is none.
func reviewText(review *string) string {
	if review == nil {
		return "None"
	}
	return *review
}

func profileCreated(username string) string {
	return fmt.Sprintf("Profile created for %s.", username)
}

func welcome(username string) string {
	return fmt.Sprintf("Welcome, %s!", username)
}

func addedToList(key catalog.MediaKey) string {
	return fmt.Sprintf("%s added to your list.", key)
}

func alreadyAdded(key catalog.MediaKey) string {
	return fmt.Sprintf("You've already added %s to your list.", key)
}

func ownReview(e catalog.ListedEntry) string {
	return fmt.Sprintf("%s: Rating - %d, Review - %s", e.MediaKey, e.Rating, reviewText(e.Review))
}

func reviewsHeader(key catalog.MediaKey) string {
	return fmt.Sprintf("\nReviews for %s:", key)
}

func ratedReview(r catalog.UserReview) string {
	return fmt.Sprintf("%s: Rating - %d, Review - %s", r.Username, r.Rating, r.Review)
}

func averageRating(avg float64) string {
	return fmt.Sprintf("\nAverage Rating: %.2f", avg)
}

func noReviews(key catalog.MediaKey) string {
	return fmt.Sprintf("No reviews found for %s.", key)
}

func writtenReviewsHeader(key catalog.MediaKey) string {
	return fmt.Sprintf("\nWritten reviews for %s:", key)
}

func writtenReview(r catalog.UserReview) string {
	return fmt.Sprintf("%s: %s", r.Username, r.Review)
}

func noWrittenReviews(key catalog.MediaKey) string {
	return fmt.Sprintf("No written reviews found for %s.", key)
}
