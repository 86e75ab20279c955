package opml

import (
	"encoding/xml"
	"strings"

	"feedreader/internal/domain/entity"
)

type document struct {
	XMLName xml.Name `xml:"opml"`
	Body    body     `xml:"body"`
}

type body struct {
	Outlines []outline `xml:"outline"`
}

type outline struct {
	Type     string    `xml:"type,attr"`
	Title    string    `xml:"title,attr"`
	Text     string    `xml:"text,attr"`
	XMLURL   string    `xml:"xmlUrl,attr"`
	HTMLURL  string    `xml:"htmlUrl,attr"`
	Outlines []outline `xml:"outline"`
}

// Parse extracts feed subscriptions from an OPML document in document
// order. Outlines without an xmlUrl attribute are folders, not feeds, and
// are skipped (their children are still visited). Malformed input yields
// an empty slice; callers treat zero feeds as a valid state.
func Parse(content string) []*entity.Feed {
	var doc document
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return []*entity.Feed{}
	}

	feeds := []*entity.Feed{}
	collect(doc.Body.Outlines, &feeds)
	return feeds
}

func collect(outlines []outline, feeds *[]*entity.Feed) {
	for _, o := range outlines {
		if strings.TrimSpace(o.XMLURL) != "" {
			title := o.Title
			if title == "" {
				title = o.Text
			}
			if title == "" {
				title = "Untitled Feed"
			}
			*feeds = append(*feeds, entity.NewFeed(title, o.XMLURL, o.HTMLURL))
		}
		collect(o.Outlines, feeds)
	}
}
