// Package linkio reads link records from JSON and writes categorized links
// as JSON or as a table.
package linkio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"linkcategorizer/internal/domain"
)

// record mirrors the JSON shape produced by extractors. Pointers tell a
// missing or null field apart from an empty one.
type record struct {
	URL   *string `json:"url"`
	Href  *string `json:"href"`
	Text  *string `json:"text"`
	Title *string `json:"title"`
}

// Decode reads a JSON array of link records. A record without a url (or
// href) is a bug in the producer, so decoding stops with an error wrapping
// domain.ErrMissingURL. Missing text and title become empty strings.
func Decode(r io.Reader) ([]domain.Link, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode link records: %w", err)
	}

	links := make([]domain.Link, 0, len(records))
	for i, rec := range records {
		link, err := rec.toLink()
		if err != nil {
			return nil, fmt.Errorf("link record %d: %w", i, err)
		}
		links = append(links, link)
	}
	return links, nil
}

func (r record) toLink() (domain.Link, error) {
	u := r.URL
	if u == nil {
		u = r.Href
	}
	if u == nil {
		return domain.Link{}, domain.ErrMissingURL
	}
	return domain.Link{
		URL:   *u,
		Text:  deref(r.Text),
		Title: deref(r.Title),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteJSON writes links as an indented JSON array. A nil slice is written
// as [] so consumers always get an array.
func WriteJSON(w io.Writer, links []domain.CategorizedLink) error {
	if links == nil {
		links = []domain.CategorizedLink{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(links); err != nil {
		return fmt.Errorf("failed to encode categorized links: %w", err)
	}
	return nil
}

// WriteTable renders links as a plain text table.
func WriteTable(w io.Writer, links []domain.CategorizedLink) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "URL", "Text", "Title"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, l := range links {
		table.Append([]string{l.Category, l.URL, l.Text, l.Title})
	}
	table.Render()
}
