package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// globFilter holds the parsed include/exclude lists of a CleanOptions.
type globFilter struct {
	include []string
	exclude []string
}

func newGlobFilter(include, exclude string) globFilter {
	return globFilter{include: parseGlobsList(include), exclude: parseGlobsList(exclude)}
}

func (g globFilter) empty() bool {
	return len(g.include) == 0 && len(g.exclude) == 0
}

// allows reports whether relPath (relative to the walk root) passes the
// filter. Patterns are tried against the slash path and the base name.
func (g globFilter) allows(relPath string) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	if len(g.include) > 0 && !matchAnyGlob(rp, g.include) {
		return false
	}
	if len(g.exclude) > 0 && matchAnyGlob(rp, g.exclude) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if t := trimGlobPrefix(p); t != p && t != "" {
			out = append(out, t)
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	base := filepath.Base(pathToMatch)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
