package catalog

import "fmt"

// MediaKey identifies a title on a user's list.
type MediaKey struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// String renders the key the way it is shown to users, e.g. "Dune (Book)".
func (k MediaKey) String() string {
	return fmt.Sprintf("%s (%s)", k.Title, k.Type)
}

// Entry is a user's rating of a title. Review is nil if the user never gave one.
type Entry struct {
	Rating int     `json:"rating"`
	Review *string `json:"review,omitempty"`
}

// HasReview reports whether the entry carries a non-empty written review.
func (e Entry) HasReview() bool {
	return e.Review != nil && *e.Review != ""
}

// ListedEntry pairs an entry with the key it is stored under.
type ListedEntry struct {
	MediaKey
	Entry
}

// UserProfile holds a user's credentials and their media list.
type UserProfile struct {
	Username string
	Password string

	media map[MediaKey]Entry
	order []MediaKey

	// onAdd is set by the owning catalog to learn about new entries.
	onAdd func(MediaKey)
}

// NewUserProfile creates a profile with an empty media list.
func NewUserProfile(username, password string) *UserProfile {
	return &UserProfile{
		Username: username,
		Password: password,
		media:    make(map[MediaKey]Entry),
	}
}

// AddToList stores a rating and optional review for a title.
// Entries are immutable: adding the same title and type again returns
// ErrAlreadyAdded and keeps the first entry. The rating is not validated.
func (u *UserProfile) AddToList(title, mediaType string, rating int, review *string) error {
	key := MediaKey{Title: title, Type: mediaType}
	if _, ok := u.media[key]; ok {
		return ErrAlreadyAdded
	}

	if review != nil {
		// don't share the caller's string
		r := *review
		review = &r
	}
	u.media[key] = Entry{Rating: rating, Review: review}
	u.order = append(u.order, key)

	if u.onAdd != nil {
		u.onAdd(key)
	}
	return nil
}

// UploadReview looks up the stored entry for a title.
func (u *UserProfile) UploadReview(title, mediaType string) (Entry, error) {
	entry, ok := u.Entry(MediaKey{Title: title, Type: mediaType})
	if !ok {
		return Entry{}, ErrNotInList
	}
	return entry, nil
}

// Entry returns the entry stored under key.
func (u *UserProfile) Entry(key MediaKey) (Entry, bool) {
	entry, ok := u.media[key]
	return entry, ok
}

// Entries returns the media list in insertion order.
func (u *UserProfile) Entries() []ListedEntry {
	entries := make([]ListedEntry, 0, len(u.order))
	for _, key := range u.order {
		entries = append(entries, ListedEntry{MediaKey: key, Entry: u.media[key]})
	}
	return entries
}

// Len returns the number of titles on the list.
func (u *UserProfile) Len() int {
	return len(u.order)
}
