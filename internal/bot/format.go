package bot

import (
	"fmt"
	"strings"

	"linkcategorizer/internal/domain"
)

// Telegram rejects messages longer than 4096 characters.
const maxMessageRunes = 4000

const (
	welcomeMessage = "Welcome to LinkCategorizer! Send me links and I'll tell you what kind of page each one points to.\n" +
		"/mylist shows the links you've sent, /forget <url> drops one of them and /clear drops them all."
	noLinksMessage    = "I couldn't find any links in that message."
	allIgnoredMessage = "All links in that message were ignored (tracking, scripts or page anchors)."
	emptyListMessage  = "You haven't sent me any links yet."
	clearedMessage    = "Your saved links have been deleted."

	forgetCommand      = "/forget"
	forgetUsageMessage = "Usage: /forget <url>"
	forgotMessage      = "Forgot %s."
	notSavedMessage    = "%s isn't in your list."
)

// formatCategorized builds the reply for a message that contained links.
func formatCategorized(links []domain.CategorizedLink) string {
	if len(links) == 0 {
		return allIgnoredMessage
	}

	var sb strings.Builder
	if len(links) == 1 {
		sb.WriteString("Categorized 1 link:\n")
	} else {
		fmt.Fprintf(&sb, "Categorized %d links:\n", len(links))
	}
	for _, l := range links {
		fmt.Fprintf(&sb, "%s: %s\n", l.Category, l.URL)
	}
	return truncate(strings.TrimSuffix(sb.String(), "\n"))
}

type categoryGroup struct {
	category string
	urls     []string
}

// groupByCategory keeps categories in order of first appearance.
func groupByCategory(links []domain.SavedLink) []categoryGroup {
	index := make(map[string]int)
	var groups []categoryGroup
	for _, l := range links {
		i, ok := index[l.Category]
		if !ok {
			i = len(groups)
			index[l.Category] = i
			groups = append(groups, categoryGroup{category: l.Category})
		}
		groups[i].urls = append(groups[i].urls, l.URL)
	}
	return groups
}

// formatSavedLinks renders a user's saved links grouped by category.
func formatSavedLinks(links []domain.SavedLink) string {
	if len(links) == 0 {
		return emptyListMessage
	}

	var sb strings.Builder
	for i, g := range groupByCategory(links) {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%d)\n", g.category, len(g.urls))
		for _, u := range g.urls {
			fmt.Fprintf(&sb, "  %s\n", u)
		}
	}
	return truncate(strings.TrimSuffix(sb.String(), "\n"))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxMessageRunes {
		return s
	}
	return string(runes[:maxMessageRunes-1]) + "…"
}
