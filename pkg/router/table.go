package router

import (
	"net/url"
	"strings"

	"github.com/vango-dev/dot/internal/errors"
	"github.com/vango-dev/dot/pkg/vdom"
)

// Wildcard is the catch-all pattern.
const Wildcard = "*"

// Component renders a matched route.
type Component func(Params) vdom.Node

// Route maps a pattern to the component it renders.
type Route struct {
	Pattern   string
	Component Component
}

// Table is an ordered set of routes. Order decides which of several
// matching patterns wins.
type Table []Route

// Match is the result of matching a path against a Table. Component is nil
// when nothing matched and the table has no wildcard.
type Match struct {
	Component Component
	Params    Params
	Path      string
	Pattern   string
}

// Render calls the matched component, or returns nil for an empty match.
func (m Match) Render() vdom.Node {
	if m.Component == nil {
		return nil
	}
	return m.Component(m.Params)
}

// Found reports whether a component matched.
func (m Match) Found() bool { return m.Component != nil }

// Validate checks every pattern. It reports empty patterns, empty parameter
// names and parameter names repeated within one pattern. Patterns that
// shadow later ones are allowed.
func (t Table) Validate() error {
	for i, r := range t {
		if strings.TrimSpace(r.Pattern) == "" {
			return errors.New("E010").WithDetail("route %d has an empty pattern", i)
		}
		if r.Pattern == Wildcard {
			continue
		}
		seen := make(map[string]bool)
		for _, seg := range segments(r.Pattern) {
			name, ok := strings.CutPrefix(seg, ":")
			if !ok {
				continue
			}
			if name == "" {
				return errors.New("E010").WithDetail("%q has an unnamed parameter", r.Pattern)
			}
			if seen[name] {
				return errors.New("E011").WithDetail("%q repeats :%s", r.Pattern, name)
			}
			seen[name] = true
		}
	}
	return nil
}

// Match finds the route for path.
func (t Table) Match(path string) Match {
	path = NormalizePath(path)
	parts := segments(path)

	for _, r := range t {
		if r.Pattern == Wildcard {
			continue
		}
		if params, ok := matchPattern(segments(r.Pattern), parts); ok {
			return Match{Component: r.Component, Params: params, Path: path, Pattern: r.Pattern}
		}
	}
	for _, r := range t {
		if r.Pattern == Wildcard {
			return Match{Component: r.Component, Params: Params{}, Path: path, Pattern: Wildcard}
		}
	}
	return Match{Params: Params{}, Path: path}
}

func matchPattern(pattern, parts []string) (Params, bool) {
	if len(pattern) != len(parts) {
		return nil, false
	}
	params := Params{}
	for i, seg := range pattern {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			params[name] = decode(parts[i])
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}

// decode percent-decodes a segment, keeping malformed input as is.
func decode(seg string) string {
	v, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return v
}

// NormalizePath drops trailing slashes, except for the root path, and
// ensures a leading slash.
func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
