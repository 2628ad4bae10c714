package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"linkcategorizer/internal/domain"
)

func categorized(url, category string) domain.CategorizedLink {
	return domain.CategorizedLink{Link: domain.Link{URL: url}, Category: category}
}

func TestFormatCategorized(t *testing.T) {
	assert.Equal(t, allIgnoredMessage, formatCategorized(nil))

	assert.Equal(t, "Categorized 1 link:\nemail: mailto:foo@bar.com",
		formatCategorized([]domain.CategorizedLink{categorized("mailto:foo@bar.com", domain.CategoryEmail)}))

	assert.Equal(t, "Categorized 2 links:\njobs: https://teamtailor.com/jobs/1\nhome: https://example.com/",
		formatCategorized([]domain.CategorizedLink{
			categorized("https://teamtailor.com/jobs/1", "jobs"),
			categorized("https://example.com/", domain.CategoryHome),
		}))
}

func TestFormatSavedLinks(t *testing.T) {
	assert.Equal(t, emptyListMessage, formatSavedLinks(nil))

	links := []domain.SavedLink{
		{CategorizedLink: categorized("https://example.com/about", "about")},
		{CategorizedLink: categorized("https://youtube.com", "social media")},
		{CategorizedLink: categorized("https://acme.com/about-us", "about")},
	}

	want := "about (2)\n" +
		"  https://example.com/about\n" +
		"  https://acme.com/about-us\n" +
		"\n" +
		"social media (1)\n" +
		"  https://youtube.com"
	assert.Equal(t, want, formatSavedLinks(links))
}

func TestTruncate(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("é", maxMessageRunes+10)
	got := truncate(long)
	assert.Equal(t, maxMessageRunes, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}
