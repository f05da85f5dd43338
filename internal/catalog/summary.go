package catalog

import (
	"context"
	"strconv"

	"github.com/dustin/go-humanize/english"
	"github.com/samber/lo"
)

// UserReview is one user's entry for a title.
type UserReview struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}

// ReviewSummary aggregates every user's entry for a title.
type ReviewSummary struct {
	Key MediaKey `json:"key"`
	// Ratings holds one rating per user that has the title, in registration order.
	Ratings []int `json:"ratings"`
	// Reviews holds the users that also wrote a non-empty review.
	Reviews []UserReview `json:"reviews"`
	// Average is the arithmetic mean of Ratings.
	Average float64 `json:"average"`
	// Revision is the key's revision the summary was computed at.
	Revision uint64 `json:"revision"`
}

type holder struct {
	username string
	entry    Entry
}

func (h holder) userReview() (UserReview, bool) {
	if !h.entry.HasReview() {
		return UserReview{}, false
	}
	return UserReview{
		Username: h.username,
		Rating:   h.entry.Rating,
		Review:   *h.entry.Review,
	}, true
}

// holders returns every user that has key on their list, in registration order.
func (c *Catalog) holders(key MediaKey) []holder {
	var holders []holder
	for _, name := range c.order {
		if entry, ok := c.users[name].Entry(key); ok {
			holders = append(holders, holder{username: name, entry: entry})
		}
	}
	return holders
}

// GetWrittenReviews returns the users that wrote a non-empty review for a title.
func (c *Catalog) GetWrittenReviews(title, mediaType string) ([]UserReview, error) {
	holders := c.holders(MediaKey{Title: title, Type: mediaType})

	reviews := lo.FilterMap(holders, func(h holder, _ int) (UserReview, bool) {
		return h.userReview()
	})
	if len(reviews) == 0 {
		return nil, ErrNoWrittenReviews
	}
	return reviews, nil
}

// GetReviews aggregates all ratings and written reviews for a title.
// It returns ErrNoReviews if nobody has the title on their list.
func (c *Catalog) GetReviews(ctx context.Context, title, mediaType string) (*ReviewSummary, error) {
	key := MediaKey{Title: title, Type: mediaType}
	revision := c.revisions[key]

	if c.summaries != nil {
		cached, err := c.summaries.Get(ctx, summaryCacheKey(key))
		switch {
		case err != nil:
			c.log.Debug("review summary not cached", "key", key, "error", err)
		case cached.Key != key || cached.Revision != revision:
			c.log.Debug("cached review summary is stale", "key", key, "cached", cached.Revision, "current", revision)
		default:
			return &cached, nil
		}
	}

	holders := c.holders(key)
	if len(holders) == 0 {
		return nil, ErrNoReviews
	}

	ratings := lo.Map(holders, func(h holder, _ int) int {
		return h.entry.Rating
	})
	summary := &ReviewSummary{
		Key:     key,
		Ratings: ratings,
		Reviews: lo.FilterMap(holders, func(h holder, _ int) (UserReview, bool) {
			return h.userReview()
		}),
		Average:  float64(lo.Sum(ratings)) / float64(len(ratings)),
		Revision: revision,
	}
	c.log.Debug("review summary computed", "key", key, "ratings", english.Plural(len(ratings), "rating", ""))

	if c.summaries != nil {
		if err := c.summaries.Set(ctx, summaryCacheKey(key), *summary); err != nil {
			c.log.Debug("failed to cache review summary", "key", key, "error", err)
		}
	}

	return summary, nil
}

// summaryCacheKey quotes both fields so distinct keys never share an entry.
func summaryCacheKey(key MediaKey) string {
	return strconv.Quote(key.Title) + ":" + strconv.Quote(key.Type)
}
