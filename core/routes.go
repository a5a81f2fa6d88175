package core

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Route binds a fragment pattern to the name of an action.
//
// Patterns follow the familiar single-page-app syntax: ":name" captures one
// path segment, "*name" captures everything up to the query string and
// "(...)" marks an optional part. Everything else is literal. Every route
// also accepts an optional trailing "?query".
type Route struct {
	Pattern    string
	Handler    string
	URLPattern *regexp.Regexp
	ParamKeys  []string
	splats     []bool
}

// RouteTable is evaluated in insertion order; the first match wins.
type RouteTable struct {
	routes []Route
}

func NewRouteTable() *RouteTable {
	return &RouteTable{}
}

func DefaultRouteTable() *RouteTable {
	t := NewRouteTable()
	t.MustAdd("", "home")
	t.MustAdd("about/", "about")
	t.MustAdd("subway/", "transitAdd")
	t.MustAdd("subway/?*queryString", "transitAdd")
	t.MustAdd("subway/:id/edit", "transitEdit")
	t.MustAdd("subway/:id", "transitShow")
	return t
}

func (t *RouteTable) Add(pattern, handler string) error {
	route, err := compileRoute(pattern)
	if err != nil {
		return err
	}
	route.Handler = handler
	t.routes = append(t.routes, route)
	return nil
}

func (t *RouteTable) MustAdd(pattern, handler string) {
	if err := t.Add(pattern, handler); err != nil {
		panic(err)
	}
}

func (t *RouteTable) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Match returns the first route matching fragment and its captured
// arguments. Named segments are URL-decoded; splats are returned raw. The
// last argument is always the raw query string, "" when there is none.
func (t *RouteTable) Match(fragment string) (Route, []string, bool) {
	for _, route := range t.routes {
		matches := route.URLPattern.FindStringSubmatch(fragment)
		if matches == nil {
			continue
		}

		args := make([]string, len(route.ParamKeys)+1)
		for i := range route.ParamKeys {
			arg := matches[i+1]
			if !route.splats[i] {
				if decoded, err := url.PathUnescape(arg); err == nil {
					arg = decoded
				}
			}
			args[i] = arg
		}
		args[len(route.ParamKeys)] = matches[len(route.ParamKeys)+1]
		return route, args, true
	}
	return Route{}, nil, false
}

// Fragment builds the routable form of a request path and raw query.
func Fragment(path, rawQuery string) string {
	fragment := strings.TrimPrefix(path, "/")
	if rawQuery != "" {
		fragment += "?" + rawQuery
	}
	return fragment
}

func compileRoute(pattern string) (Route, error) {
	var (
		b      strings.Builder
		keys   []string
		splats []bool
		depth  int
	)

	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '(':
			depth++
			b.WriteString("(?:")
		case ')':
			if depth == 0 {
				return Route{}, fmt.Errorf("route %q: unbalanced ')'", pattern)
			}
			depth--
			b.WriteString(")?")
		case ':', '*':
			j := i + 1
			for j < len(pattern) && isWordByte(pattern[j]) {
				j++
			}
			if j == i+1 {
				b.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			keys = append(keys, pattern[i+1:j])
			splats = append(splats, c == '*')
			if c == '*' {
				b.WriteString("([^?]*?)")
			} else {
				b.WriteString("([^/?]+)")
			}
			i = j - 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if depth != 0 {
		return Route{}, fmt.Errorf("route %q: unbalanced '('", pattern)
	}
	b.WriteString(`(?:\?([\s\S]*))?$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return Route{}, fmt.Errorf("route %q: %w", pattern, err)
	}

	return Route{
		Pattern:    pattern,
		URLPattern: re,
		ParamKeys:  keys,
		splats:     splats,
	}, nil
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
