package navigation

import "strings"

// Rewrite returns path with its leading locale segment replaced by code. The
// first segment is only stripped when isLocale recognises it; query strings
// and fragments are kept. A path without a remainder maps to "/{code}/".
func Rewrite(path, code string, isLocale func(string) bool) string {
	suffix := ""
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path, suffix = path[:idx], path[idx:]
	}

	rest := "/" + strings.TrimLeft(path, "/")
	if segment := FirstSegment(rest); segment != "" && isLocale != nil && isLocale(segment) {
		rest = strings.TrimPrefix(rest, "/"+segment)
	}
	if rest == "" {
		rest = "/"
	}
	return "/" + code + rest + suffix
}

// FirstSegment returns the first non-empty path segment.
func FirstSegment(path string) string {
	trimmed := strings.TrimLeft(path, "/")
	if idx := strings.IndexAny(trimmed, "/?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
