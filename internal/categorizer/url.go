package categorizer

import (
	"net/url"
	"strings"
)

// urlParts holds the pieces of a link the rules look at. Any of them may be
// empty.
type urlParts struct {
	scheme string
	domain string
	path   string
}

// paramSchemes are the schemes whose last path segment may carry ";params".
var paramSchemes = map[string]bool{
	"": true, "ftp": true, "hdl": true, "prospero": true, "http": true,
	"imap": true, "https": true, "shttp": true, "rtsp": true, "rtsps": true,
	"rtspu": true, "sip": true, "sips": true, "mms": true, "sftp": true,
	"tel": true,
}

// splitURL never fails. Inputs net/url rejects (bad escapes, spaces in the
// host, a leading colon) go through splitLenient instead.
func splitURL(raw string) urlParts {
	raw = cleanHref(raw)

	u, err := url.Parse(raw)
	if err != nil {
		return splitLenient(raw)
	}

	p := urlParts{
		scheme: strings.ToLower(u.Scheme),
		domain: u.Host,
	}
	if u.User != nil {
		p.domain = u.User.String() + "@" + u.Host
	}
	if u.Opaque != "" {
		p.path = u.Opaque
	} else {
		p.path = u.EscapedPath()
	}
	p.path = trimParams(p.scheme, p.path)
	return p
}

// cleanHref drops leading C0 controls and spaces, and tabs and line breaks
// anywhere, the way browsers read an href attribute.
func cleanHref(raw string) string {
	raw = strings.TrimLeftFunc(raw, func(r rune) bool { return r <= ' ' })
	if strings.ContainsAny(raw, "\t\r\n") {
		raw = strings.NewReplacer("\t", "", "\r", "", "\n", "").Replace(raw)
	}
	return raw
}

func splitLenient(raw string) urlParts {
	var p urlParts
	rest := raw

	if i := strings.IndexByte(rest, ':'); i > 0 && validScheme(rest[:i]) {
		p.scheme = strings.ToLower(rest[:i])
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		p.domain = rest[:end]
		rest = rest[end:]
	}

	if end := strings.IndexAny(rest, "?#"); end >= 0 {
		rest = rest[:end]
	}
	p.path = trimParams(p.scheme, rest)
	return p
}

// validScheme reports whether s is an RFC 3986 scheme: a letter followed by
// letters, digits, '+', '-' or '.'.
func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

// trimParams drops ";params" from the last path segment, so "/about;jsessionid=1"
// is matched as "/about". Other schemes keep the path as is.
func trimParams(scheme, path string) string {
	if !paramSchemes[scheme] {
		return path
	}
	last := strings.LastIndexByte(path, '/')
	if i := strings.IndexByte(path[last+1:], ';'); i >= 0 {
		return path[:last+1+i]
	}
	return path
}
