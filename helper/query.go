package helper

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Params maps decoded query keys to decoded values. A key given without
// "=" maps to nil, so "?flag" and "?flag=" stay distinguishable.
type Params map[string]*string

// ParseQueryString decodes raw with decodeURI semantics, splits it on "&"
// and each segment on its first "=". Later duplicates replace earlier ones.
func ParseQueryString(raw string) Params {
	params := Params{}
	if raw == "" {
		return params
	}

	for _, segment := range strings.Split(decodeURI(raw), "&") {
		if segment == "" {
			continue
		}
		key, value, found := strings.Cut(segment, "=")
		if !found {
			params[key] = nil
			continue
		}
		params[key] = &value
	}

	return params
}

func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Map converts p for merging into view params. Absent values become nil.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = *v
	}
	return out
}

// Encode joins p back into a query string with keys in sorted order.
// Values are written verbatim.
func (p Params) Encode() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		if v := p[k]; v != nil {
			b.WriteByte('=')
			b.WriteString(*v)
		}
	}
	return b.String()
}

const uriReserved = ";/?:@&=+$,#"

// decodeURI resolves percent-escapes except those for reserved characters,
// which stay encoded. Input with a malformed escape or that decodes to
// invalid UTF-8 is returned unchanged.
func decodeURI(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			out = append(out, c)
			continue
		}
		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return s
		}
		b := unhex(s[i+1])<<4 | unhex(s[i+2])
		if b < utf8.RuneSelf && strings.IndexByte(uriReserved, b) >= 0 {
			out = append(out, s[i:i+3]...)
		} else {
			out = append(out, b)
		}
		i += 2
	}

	if !utf8.Valid(out) {
		return s
	}
	return string(out)
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
