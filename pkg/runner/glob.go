package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// MatchGlob reports whether the slash-separated relative path name matches
// pattern. "**" matches any number of path segments, including none.
// A pattern without "/" is tested against every segment of name, so "*.bak"
// or "testdata" match at any depth.
func MatchGlob(pattern, name string) bool {
	pattern = strings.Trim(filepath.ToSlash(pattern), "/")
	pattern = strings.TrimPrefix(pattern, "./")
	name = strings.Trim(filepath.ToSlash(name), "/")
	if pattern == "" || name == "" {
		return false
	}

	segments := strings.Split(name, "/")

	if !strings.Contains(pattern, "/") {
		for _, seg := range segments {
			if ok, err := path.Match(pattern, seg); err == nil && ok {
				return true
			}
		}
		return false
	}

	return matchSegments(strings.Split(pattern, "/"), segments)
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(segments); i++ {
				if matchSegments(pattern[1:], segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segments[0]); err != nil || !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}

func matchesAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, relPath) {
			return true
		}
	}
	return false
}
