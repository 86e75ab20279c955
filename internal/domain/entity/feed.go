package entity

import (
	"crypto/sha1"
	"encoding/hex"
)

// Feed is one subscribed source. UnreadCount is a derived cache,
// recomputed from the article set on every refresh and read-state change.
type Feed struct {
	ID          string
	Title       string
	FeedURL     string
	SiteURL     string
	UnreadCount int
}

func NewFeed(title, feedURL, siteURL string) *Feed {
	return &Feed{
		ID:      DeriveFeedID(feedURL),
		Title:   title,
		FeedURL: feedURL,
		SiteURL: siteURL,
	}
}

// DeriveFeedID returns a stable id for a feed URL. The same URL always
// maps to the same id, independent of the feed's display title.
func DeriveFeedID(feedURL string) string {
	return "feed_" + digest(feedURL)
}

func digest(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:8])
}
