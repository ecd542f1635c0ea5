package http

import (
	"strings"
)

// lookupQuery returns the first value of key in rawQuery.
//
// Unlike url.ParseQuery it never drops a pair: malformed percent escapes
// are kept literally, so "text=%zz" yields "%zz". A key with no "=" has
// an empty value. Invalid UTF-8 in the decoded value becomes U+FFFD.
func lookupQuery(rawQuery, key string) (string, bool) {
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" {
			continue
		}

		k, v, _ := strings.Cut(pair, "=")
		if unescapeLenient(k) != key {
			continue
		}

		return strings.ToValidUTF8(unescapeLenient(v), "\uFFFD"), true
	}

	return "", false
}

// unescapeLenient decodes '+' and valid %XX escapes, copying anything
// else through unchanged.
func unescapeLenient(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
