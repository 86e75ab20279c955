package rss

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"feedreader/internal/domain/entity"
)

func testFeed() *entity.Feed {
	return entity.NewFeed("Example Blog", "https://example.tld/feed.xml", "https://example.tld")
}

func rssPayload(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Example Blog</title>
<link>https://example.tld</link>
` + items + `
</channel>
</rss>`
}

func TestNormalize_RSS(t *testing.T) {
	payload := rssPayload(`
<item>
  <title>First Post</title>
  <link>https://example.tld/post/1</link>
  <description>&lt;p&gt;A short description.&lt;/p&gt;</description>
  <dc:creator>Jane Doe</dc:creator>
  <pubDate>Mon, 02 Jan 2023 15:04:05 GMT</pubDate>
</item>`)

	articles := NewNormalizer().Normalize(payload, testFeed())
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "First Post" {
		t.Errorf("expected title 'First Post', got '%s'", a.Title)
	}
	if a.Link != "https://example.tld/post/1" {
		t.Errorf("expected link 'https://example.tld/post/1', got '%s'", a.Link)
	}
	if a.Author != "Jane Doe" {
		t.Errorf("expected author 'Jane Doe', got '%s'", a.Author)
	}
	if a.Excerpt != "A short description." {
		t.Errorf("expected excerpt 'A short description.', got '%s'", a.Excerpt)
	}
	if a.FeedID != testFeed().ID {
		t.Errorf("expected feed id %s, got %s", testFeed().ID, a.FeedID)
	}
	if a.FeedTitle != "Example Blog" {
		t.Errorf("expected feed title 'Example Blog', got '%s'", a.FeedTitle)
	}
	want := time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Errorf("expected published %v, got %v", want, a.PublishedAt)
	}
	if a.IsRead {
		t.Error("expected fresh article to be unread")
	}
}

func TestNormalize_RSSContentEncodedWins(t *testing.T) {
	payload := rssPayload(`
<item>
  <title>Post</title>
  <link>https://example.tld/post/1</link>
  <description>short</description>
  <content:encoded><![CDATA[<p>full body</p>]]></content:encoded>
</item>`)

	articles := NewNormalizer().Normalize(payload, testFeed())
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if !strings.Contains(articles[0].Content, "full body") {
		t.Errorf("expected body from content:encoded, got '%s'", articles[0].Content)
	}
}

func TestNormalize_Atom(t *testing.T) {
	payload := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Blog</title>
  <entry>
    <title>Atom Entry</title>
    <link rel="enclosure" href="https://example.tld/audio.mp3"/>
    <link rel="alternate" href="https://example.tld/entry/1"/>
    <summary>Summary text.</summary>
    <author><name>John Smith</name></author>
    <updated>2023-06-15T10:30:00Z</updated>
  </entry>
</feed>`

	articles := NewNormalizer().Normalize(payload, testFeed())
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	a := articles[0]
	if a.Link != "https://example.tld/entry/1" {
		t.Errorf("expected the alternate link, got '%s'", a.Link)
	}
	if a.Excerpt != "Summary text." {
		t.Errorf("expected excerpt from summary, got '%s'", a.Excerpt)
	}
	if a.Author != "John Smith" {
		t.Errorf("expected author 'John Smith', got '%s'", a.Author)
	}
	want := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Errorf("expected updated time as publish fallback, got %v", a.PublishedAt)
	}
}

func TestNormalize_CapsAtTwentyEntries(t *testing.T) {
	var items strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&items, `<item><title>Post %d</title><link>https://example.tld/post/%d</link></item>`, i, i)
	}

	articles := NewNormalizer().Normalize(rssPayload(items.String()), testFeed())
	if len(articles) != 20 {
		t.Fatalf("expected 20 articles, got %d", len(articles))
	}
	if articles[0].Title != "Post 0" {
		t.Errorf("expected first article in document order, got '%s'", articles[0].Title)
	}
	if articles[19].Title != "Post 19" {
		t.Errorf("expected 20th article 'Post 19', got '%s'", articles[19].Title)
	}
}

func TestNormalize_DefaultsAndFallbacks(t *testing.T) {
	before := time.Now()
	payload := rssPayload(`
<item>
  <link>https://example.tld/post/1</link>
  <pubDate>not a date</pubDate>
</item>`)

	articles := NewNormalizer().Normalize(payload, testFeed())
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "Untitled" {
		t.Errorf("expected default title 'Untitled', got '%s'", a.Title)
	}
	if a.PublishedAt.Before(before) {
		t.Errorf("expected current time for unparseable date, got %v", a.PublishedAt)
	}
}

func TestNormalize_StableArticleIDs(t *testing.T) {
	payload := rssPayload(`
<item><title>Post</title><link>https://example.tld/post/1</link></item>`)
	feed := testFeed()

	n := NewNormalizer()
	first := n.Normalize(payload, feed)
	second := n.Normalize(payload, feed)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 article per pass, got %d and %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("expected stable id across normalizations, got %s and %s", first[0].ID, second[0].ID)
	}
}

func TestNormalize_MalformedPayload(t *testing.T) {
	for _, payload := range []string{"", "not xml", "<html><body>nope</body></html>"} {
		articles := NewNormalizer().Normalize(payload, testFeed())
		if len(articles) != 0 {
			t.Errorf("expected 0 articles for payload %q, got %d", payload, len(articles))
		}
	}
}

func TestExtractExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "strips markup",
			body:     "<p>Hello <strong>world</strong></p>",
			expected: "Hello world",
		},
		{
			name:     "decodes entities",
			body:     "Fish &amp; Chips&nbsp;again",
			expected: "Fish & Chips again",
		},
		{
			name:     "collapses whitespace",
			body:     "  line one\n\n   line two  ",
			expected: "line one line two",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractExcerpt(tt.body)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExtractExcerpt_TruncatesLongBodies(t *testing.T) {
	body := "<p>" + strings.Repeat("word ", 100) + "</p>"
	excerpt := extractExcerpt(body)

	if utf8.RuneCountInString(excerpt) > maxExcerptLen+3 {
		t.Errorf("expected at most %d characters, got %d", maxExcerptLen+3, utf8.RuneCountInString(excerpt))
	}
	if !strings.HasSuffix(excerpt, "...") {
		t.Errorf("expected trailing ellipsis, got %q", excerpt)
	}
	if strings.ContainsAny(excerpt, "<>") {
		t.Errorf("expected no markup characters in excerpt, got %q", excerpt)
	}
}

func TestExtractFirstImage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "plain image",
			body:     `<p>text</p><img src="https://example.tld/photo.jpg" alt="x"/>`,
			expected: "https://example.tld/photo.jpg",
		},
		{
			name:     "skips data URI",
			body:     `<img src="data:image/gif;base64,R0lGOD"/><img src="https://example.tld/real.png"/>`,
			expected: "https://example.tld/real.png",
		},
		{
			name:     "skips tracking pixel",
			body:     `<img src="https://ads.tld/pixel.gif"/><img src="https://example.tld/cover.jpg"/>`,
			expected: "https://example.tld/cover.jpg",
		},
		{
			name:     "skips tracking URL",
			body:     `<img src="https://metrics.tld/tracking/1x1.gif"/>`,
			expected: "",
		},
		{
			name:     "no image",
			body:     `<p>just text</p>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractFirstImage(tt.body)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
