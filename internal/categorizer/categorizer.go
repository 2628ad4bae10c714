// Package categorizer assigns hyperlinks to semantic categories using ordered
// rule tables over the URL scheme, domain, path, title and anchor text.
package categorizer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"

	"linkcategorizer/internal/domain"
)

// LinkCategorizer is implemented by *Categorizer. Consumers such as the bot
// depend on this instead of the concrete type.
type LinkCategorizer interface {
	Categorize(link domain.Link) string
	CategorizeAll(links []domain.Link) []domain.CategorizedLink
}

// Categorizer classifies links. It holds no mutable state besides an
// optional result cache, and is safe for concurrent use.
type Categorizer struct {
	log     logrus.FieldLogger
	workers int
	cache   *lru.Cache[cacheKey, string]
}

// cacheKey is the normalized input; classification depends on nothing else.
type cacheKey struct {
	url, text, title string
}

// Option configures a Categorizer.
type Option func(*Categorizer) error

// WithLogger sets the logger. Only debug-level entries are written.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Categorizer) error {
		c.log = logger.WithField("component", "categorizer")
		return nil
	}
}

// WithWorkers sets how many goroutines CategorizeAll may use. Values below 2
// keep batches sequential.
func WithWorkers(n int) Option {
	return func(c *Categorizer) error {
		if n < 1 {
			n = 1
		}
		c.workers = n
		return nil
	}
}

// WithCacheSize memoizes results for the last size distinct links. Zero or
// less disables the cache.
func WithCacheSize(size int) Option {
	return func(c *Categorizer) error {
		if size <= 0 {
			c.cache = nil
			return nil
		}
		cache, err := lru.New[cacheKey, string](size)
		if err != nil {
			return fmt.Errorf("failed to create categorizer cache: %w", err)
		}
		c.cache = cache
		return nil
	}
}

// New creates a Categorizer. Without options it is sequential, uncached and
// silent.
func New(opts ...Option) (*Categorizer, error) {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Categorizer{
		log:     silent,
		workers: 1,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var defaultCategorizer = &Categorizer{
	log:     logrus.StandardLogger().WithField("component", "categorizer"),
	workers: 1,
}

// Categorize classifies a single link with the default Categorizer.
func Categorize(link domain.Link) string {
	return defaultCategorizer.Categorize(link)
}

// CategorizeAll classifies links with the default Categorizer.
func CategorizeAll(links []domain.Link) []domain.CategorizedLink {
	return defaultCategorizer.CategorizeAll(links)
}

// Categorize returns the category of link, or domain.CategoryIgnored if the
// link should be dropped. The result is never empty.
func (c *Categorizer) Categorize(link domain.Link) string {
	key := cacheKey{
		url:   link.URL,
		text:  normalizeText(link.Text),
		title: normalizeText(link.Title),
	}
	if c.cache == nil {
		return classify(key)
	}
	if category, ok := c.cache.Get(key); ok {
		return category
	}
	category := classify(key)
	c.cache.Add(key, category)
	return category
}

// CategorizeAll annotates each link with its category and drops the ignored
// ones. Surviving links keep their input order.
func (c *Categorizer) CategorizeAll(links []domain.Link) []domain.CategorizedLink {
	categories := c.categorizeEach(links)

	out := make([]domain.CategorizedLink, 0, len(links))
	for i, link := range links {
		if categories[i] == domain.CategoryIgnored {
			c.log.WithField("url", link.URL).Debug("Dropping ignored link")
			continue
		}
		out = append(out, domain.CategorizedLink{Link: link, Category: categories[i]})
	}

	c.log.WithFields(logrus.Fields{
		"input":   len(links),
		"output":  len(out),
		"workers": c.workers,
	}).Debug("Categorized links")
	return out
}

func (c *Categorizer) categorizeEach(links []domain.Link) []string {
	if c.workers > 1 && len(links) > 1 {
		mapper := iter.Mapper[domain.Link, string]{MaxGoroutines: c.workers}
		return mapper.Map(links, func(link *domain.Link) string {
			return c.Categorize(*link)
		})
	}

	categories := make([]string, len(links))
	for i, link := range links {
		categories[i] = c.Categorize(link)
	}
	return categories
}

// classify runs the rule tables in priority order; the first hit wins.
func classify(in cacheKey) string {
	// The raw URL is checked so tracking parameters anywhere in the query
	// string are caught.
	if matchesAny(ignorePatterns, in.url) {
		return domain.CategoryIgnored
	}

	parts := splitURL(in.url)

	switch parts.scheme {
	case "mailto":
		return domain.CategoryEmail
	case "tel", "fax":
		return domain.CategoryTelephone
	case "sms":
		return domain.CategorySMS
	case "data":
		return domain.CategoryData
	}

	if category, ok := firstMatch(domainRules, parts.domain); ok {
		return category
	}
	if category, ok := firstMatch(pathRules, parts.path); ok {
		return category
	}
	if matchableText(in.title) {
		if category, ok := firstMatch(textRules, in.title); ok {
			return category
		}
	}
	if matchableText(in.text) {
		if category, ok := firstMatch(textRules, in.text); ok {
			return category
		}
	}

	if parts.path == "" || parts.path == "/" {
		return domain.CategoryHome
	}
	return domain.CategoryUnknown
}

// textSpaces are folded to a plain space before matching. U+00A0 comes from
// &nbsp; in anchor text and is not matched by \s.
var textSpaces = strings.NewReplacer("\n", " ", "\u00a0", " ")

// normalizeText folds newlines and no-break spaces into spaces and trims
// surrounding whitespace.
func normalizeText(s string) string {
	return strings.TrimSpace(textSpaces.Replace(s))
}

func matchableText(s string) bool {
	return s != "" && utf8.RuneCountInString(s) < TextMaxLength
}
