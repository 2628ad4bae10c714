package domain

import (
	"errors"
	"time"
)

// Category labels produced outside the rule tables.
const (
	// CategoryIgnored marks a link that is dropped from batch output.
	CategoryIgnored   = "ignored"
	CategoryEmail     = "email"
	CategoryTelephone = "telephone"
	CategorySMS       = "sms"
	CategoryData      = "data"
	CategoryHome      = "home"
	CategoryUnknown   = "unknown"
)

// ErrMissingURL is returned when a link record arrives without a url field.
var ErrMissingURL = errors.New("link record has no url")

// Link is a hyperlink as produced by an upstream extractor.
type Link struct {
	// URL is the raw href value. It may be relative or malformed.
	URL string `json:"url"`

	// Text is the anchor text.
	Text string `json:"text"`

	// Title is the title attribute of the anchor.
	Title string `json:"title"`
}

// CategorizedLink is a Link annotated with exactly one category.
type CategorizedLink struct {
	Link
	Category string `json:"category"`
}

// SavedLink is a categorized link stored on behalf of a bot user.
type SavedLink struct {
	CategorizedLink

	// UserID is the Telegram User ID of the user who sent the link.
	UserID int64 `json:"user_id"`

	// Timestamp indicates when the link was saved.
	Timestamp time.Time `json:"timestamp"`
}
