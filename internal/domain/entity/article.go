package entity

import "time"

// Article is the normalized form of one feed entry. IsRead is a transient
// projection applied at refresh time; the persisted read set is authoritative.
type Article struct {
	ID          string
	FeedID      string
	FeedTitle   string
	Title       string
	Link        string
	Content     string
	Excerpt     string
	Author      string
	PublishedAt time.Time
	IsRead      bool
	ImageURL    string
}

// DeriveArticleID returns a stable id for an entry, keyed on its permalink
// so the same remote entry maps to the same id across repeated fetches.
// Entries without a link fall back to their title.
func DeriveArticleID(link, title string) string {
	key := link
	if key == "" {
		key = title
	}
	return "article_" + digest(key)
}
