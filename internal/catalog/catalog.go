// Package catalog holds the in-memory user registry and the review aggregation
// built on top of it.
package catalog

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/google/uuid"
	"github.com/mergestat/timediff"
)

// SummaryCache stores computed review summaries.
// *cache.PrefixedCache[ReviewSummary] satisfies it.
type SummaryCache interface {
	Get(ctx context.Context, key any) (ReviewSummary, error)
	Set(ctx context.Context, key any, object ReviewSummary, options ...store.Option) error
	Delete(ctx context.Context, key any) error
}

// Session describes the active login.
type Session struct {
	ID        uuid.UUID
	Username  string
	StartedAt time.Time
}

// Catalog owns all user profiles and tracks the logged-in user.
// It is not safe for concurrent use.
type Catalog struct {
	users map[string]*UserProfile
	order []string

	current *UserProfile
	session *Session

	// revisions counts additions per key and is used to detect stale summaries.
	revisions map[MediaKey]uint64
	summaries SummaryCache

	log *log.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSummaryCache makes GetReviews memoize its results in c.
func WithSummaryCache(c SummaryCache) Option {
	return func(cat *Catalog) {
		cat.summaries = c
	}
}

// WithLogger sets the logger used by the catalog.
func WithLogger(l *log.Logger) Option {
	return func(cat *Catalog) {
		cat.log = l
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		users:     make(map[string]*UserProfile),
		revisions: make(map[MediaKey]uint64),
		log:       log.Default().WithPrefix("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateUserProfile registers a new user. Usernames are case-sensitive.
func (c *Catalog) CreateUserProfile(username, password string) (*UserProfile, error) {
	if _, ok := c.users[username]; ok {
		c.log.Debug("username already taken", "username", username)
		return nil, ErrUsernameTaken
	}

	user := NewUserProfile(username, password)
	user.onAdd = c.bumpRevision
	c.users[username] = user
	c.order = append(c.order, username)

	c.log.Debug("profile created", "username", username, "profiles", len(c.order))
	return user, nil
}

// Login makes the matching profile the current user.
// On failure the current user is left as it was.
func (c *Catalog) Login(username, password string) (*UserProfile, error) {
	user, ok := c.users[username]
	if !ok || user.Password != password {
		c.log.Debug("login failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	c.current = user
	c.session = &Session{
		ID:        uuid.New(),
		Username:  username,
		StartedAt: time.Now(),
	}

	c.log.Debug("logged in", "username", username, "session", c.session.ID)
	return user, nil
}

// Logout clears the current user. It is a no-op if nobody is logged in.
func (c *Catalog) Logout() {
	if c.session != nil {
		c.log.Debug("logged out",
			"username", c.session.Username,
			"session", c.session.ID,
			"started", timediff.TimeDiff(c.session.StartedAt),
		)
	}
	c.current = nil
	c.session = nil
}

// CurrentUser returns the logged-in user, or nil.
func (c *Catalog) CurrentUser() *UserProfile {
	return c.current
}

// Session returns the active session, or nil.
func (c *Catalog) Session() *Session {
	return c.session
}

// User looks up a profile by username.
func (c *Catalog) User(username string) (*UserProfile, bool) {
	user, ok := c.users[username]
	return user, ok
}

// Users returns all profiles in registration order.
func (c *Catalog) Users() []*UserProfile {
	users := make([]*UserProfile, 0, len(c.order))
	for _, name := range c.order {
		users = append(users, c.users[name])
	}
	return users
}

// Len returns the number of registered profiles.
func (c *Catalog) Len() int {
	return len(c.order)
}

// ViewOwnReviews returns the current user's list in insertion order.
func (c *Catalog) ViewOwnReviews() ([]ListedEntry, error) {
	if c.current == nil {
		return nil, ErrNotLoggedIn
	}
	return c.current.Entries(), nil
}

func (c *Catalog) bumpRevision(key MediaKey) {
	c.revisions[key]++
}
