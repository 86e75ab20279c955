package rss

import (
	"html"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"feedreader/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const (
	// Entries beyond this index are dropped to bound memory and list size.
	maxArticlesPerFeed = 20
	maxExcerptLen      = 200
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer converts raw RSS/Atom payloads into articles, independent of
// how the payload was retrieved.
type Normalizer struct {
	parser *gofeed.Parser
}

func NewNormalizer() *Normalizer {
	return &Normalizer{parser: gofeed.NewParser()}
}

// Normalize parses a feed payload and maps its entries onto articles.
// Format detection (RSS vs Atom) is structural, never based on MIME type.
// A malformed payload yields an empty slice; callers must stay resilient
// to one bad feed among many.
func (n *Normalizer) Normalize(payload string, feed *entity.Feed) []*entity.Article {
	parsed, err := n.parser.ParseString(payload)
	if err != nil {
		log.Printf("Unparseable payload from feed [%s]: %v", feed.Title, err)
		return []*entity.Article{}
	}

	limit := len(parsed.Items)
	if limit > maxArticlesPerFeed {
		limit = maxArticlesPerFeed
	}

	articles := make([]*entity.Article, 0, limit)
	for _, item := range parsed.Items[:limit] {
		if item == nil {
			continue
		}
		articles = append(articles, n.toArticle(item, feed))
	}
	return articles
}

func (n *Normalizer) toArticle(item *gofeed.Item, feed *entity.Feed) *entity.Article {
	title := cleanText(item.Title)
	if title == "" {
		title = "Untitled"
	}

	// Atom: content falling back to summary; RSS: content:encoded falling
	// back to description. gofeed maps both pairs onto Content/Description.
	body := item.Content
	if body == "" {
		body = item.Description
	}

	author := ""
	if item.Author != nil {
		author = strings.TrimSpace(item.Author.Name)
	}

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	return &entity.Article{
		ID:          entity.DeriveArticleID(item.Link, title),
		FeedID:      feed.ID,
		FeedTitle:   feed.Title,
		Title:       title,
		Link:        item.Link,
		Content:     body,
		Excerpt:     extractExcerpt(body),
		Author:      author,
		PublishedAt: published,
		ImageURL:    extractFirstImage(body),
	}
}

// extractExcerpt reduces an HTML body to plain text capped at
// maxExcerptLen characters, with a trailing ellipsis when truncated.
func extractExcerpt(body string) string {
	text := tagPattern.ReplaceAllString(body, "")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) <= maxExcerptLen {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxExcerptLen])) + "..."
}

// extractFirstImage returns the src of the first image in the body,
// skipping data URIs and anything that looks like a tracking pixel.
func extractFirstImage(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	imageURL := ""
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			return true
		}
		if strings.HasPrefix(src, "data:") ||
			strings.Contains(src, "pixel") ||
			strings.Contains(src, "tracking") {
			return true
		}
		imageURL = src
		return false
	})
	return imageURL
}

func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
