package catalog

import "errors"

var (
	// ErrUsernameTaken is returned when a profile with the username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotLoggedIn is returned by operations that need an active session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrAlreadyAdded is returned when a title is added to a list twice.
	ErrAlreadyAdded = errors.New("title already added")
	// ErrNotInList is returned when a title is not on a user's list.
	ErrNotInList = errors.New("title not in list")
	// ErrNoReviews is returned when no user has rated a title.
	ErrNoReviews = errors.New("no reviews found")
	// ErrNoWrittenReviews is returned when no user has written a review for a title.
	ErrNoWrittenReviews = errors.New("no written reviews found")
)
