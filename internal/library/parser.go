package library

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/lessondl/internal/model"
)

// Parser extracts the tracklist from a player page.
//
// The player page lists its files as attributes on the children of a
// single <items> element:
//
//	<items>
//	  <item name="Lesson 1.mp3" downloadurl="https://..." checksum="..."></item>
//	  ...
//	</items>
//
// Example usage:
//
//	parser := NewParser()
//	pl, err := parser.Parse(id, page)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, track := range pl.Tracks {
//	    fmt.Printf("  %d. %s\n", track.Number, track.Name)
//	}
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a Playlist from the raw page.
//
// Tracks keep document order. Returns an error wrapping ErrStructure if the
// page has no <items> element. A missing title is not an error; it becomes
// model.DefaultTitle.
func (p *Parser) Parse(id string, page []byte) (*model.Playlist, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	items := doc.Find("items").First()
	if items.Length() == 0 {
		return nil, fmt.Errorf("playlist %s: %w", id, ErrStructure)
	}

	var tracks []*model.Track
	for _, item := range itemNodes(items.Children(), nil) {
		tracks = append(tracks, model.NewTrack(
			item.AttrOr("name", ""),
			item.AttrOr("downloadurl", ""),
			item.AttrOr("checksum", ""),
		))
	}

	return model.NewPlaylist(id, docTitle(doc), tracks), nil
}

// itemNodes flattens item elements into document order.
//
// HTML parsers do not honor self-closing custom tags, so
// <item/><item/> parses as <item><item></item></item>. Any child sharing
// its parent's tag name is therefore treated as the parent's next sibling.
func itemNodes(sel *goquery.Selection, out []*goquery.Selection) []*goquery.Selection {
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
		out = itemNodes(s.ChildrenFiltered(goquery.NodeName(s)), out)
	})
	return out
}

// docTitle returns the trimmed <title> that is a direct child of the first
// top-level element, or model.DefaultTitle.
//
// The HTML parser always inserts a <head>. When that head is empty the page
// had none of its own, so the element after it (the body) counts as first.
func docTitle(doc *goquery.Document) string {
	top := doc.Find("html").Children()
	first := top.First()
	if goquery.NodeName(first) == "head" && first.Contents().Length() == 0 && top.Length() > 1 {
		first = top.Eq(1)
	}

	title := first.ChildrenFiltered("title").First()
	if title.Length() == 0 {
		return model.DefaultTitle
	}

	text := strings.TrimSpace(title.Text())
	if text == "" {
		return model.DefaultTitle
	}
	return text
}
