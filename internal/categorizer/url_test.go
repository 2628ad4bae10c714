package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitURL(t *testing.T) {
	tests := []struct {
		raw  string
		want urlParts
	}{
		{"https://example.com/about", urlParts{"https", "example.com", "/about"}},
		{"HTTPS://Example.com:8443/a/b?q=1#frag", urlParts{"https", "Example.com:8443", "/a/b"}},
		{"https://user@example.com/", urlParts{"https", "user@example.com", "/"}},
		{"//cdn.example.com/lib.js", urlParts{"", "cdn.example.com", "/lib.js"}},
		{"mailto:foo@bar.com", urlParts{"mailto", "", "foo@bar.com"}},
		{"/relative/path?x=1", urlParts{"", "", "/relative/path"}},
		{"", urlParts{}},
		{"https://example.com/a;b=c", urlParts{"https", "example.com", "/a"}},

		// Rejected by net/url.
		{"http://exa mple.com/about", urlParts{"http", "exa mple.com", "/about"}},
		{"http://example.com/%zz?q", urlParts{"http", "example.com", "/%zz"}},
		{":no-scheme", urlParts{"", "", ":no-scheme"}},

		// Whitespace and control characters from extractors.
		{"https://example.com/about\n", urlParts{"https", "example.com", "/about"}},
		{"  https://blog.example.com/x", urlParts{"https", "blog.example.com", "/x"}},
		{"https://example.com/jo\r\nbs", urlParts{"https", "example.com", "/jobs"}},

		// Only some schemes carry ;params.
		{"custom:/about;x", urlParts{"custom", "", "/about;x"}},
		{"skype:foo;about", urlParts{"skype", "", "foo;about"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, splitURL(tt.raw))
		})
	}
}

func TestValidScheme(t *testing.T) {
	assert.True(t, validScheme("http"))
	assert.True(t, validScheme("svn+ssh"))
	assert.True(t, validScheme("A1.b-c"))
	assert.False(t, validScheme(""))
	assert.False(t, validScheme("1http"))
	assert.False(t, validScheme("ht tp"))
}

func TestTrimParams(t *testing.T) {
	assert.Equal(t, "/about", trimParams("https", "/about;jsessionid=1"))
	assert.Equal(t, "/a;b/c", trimParams("http", "/a;b/c"))
	assert.Equal(t, "page", trimParams("", "page;x"))
	assert.Equal(t, "+1555;ext=2", trimParams("sms", "+1555;ext=2"))
	assert.Equal(t, "+1555", trimParams("tel", "+1555;ext=2"))
	assert.Equal(t, "/about;x", trimParams("custom", "/about;x"))
	assert.Equal(t, "", trimParams("https", ""))
}

func TestCleanHref(t *testing.T) {
	assert.Equal(t, "https://example.com/about", cleanHref(" \x00\thttps://example.com/about"))
	assert.Equal(t, "https://example.com/jobs", cleanHref("https://exam\nple.com/jo\tbs\r"))
	assert.Equal(t, "https://example.com/a ", cleanHref("https://example.com/a "),
		"Trailing spaces are kept")
	assert.Equal(t, "", cleanHref(" \n "))
}
