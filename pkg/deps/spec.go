package deps

import "strings"

// versionDelims are the characters that begin a version constraint in an apk
// dependency specifier. apk uses the operators =, <, >, ~ and combinations
// of them (>=, <=, ~=, ><); whitespace-separated constraint tokens also
// terminate the name.
const versionDelims = "=<>~ \t"

// Normalize strips the version constraint from a raw dependency specifier
// and returns the canonical package identifier.
//
// "musl>=1.2.4", "musl=1.2.4-r1" and "musl" all normalize to "musl". The
// apk conflict marker "!name" normalizes to "name". Normalize is total:
// malformed tokens reduce to their longest name-like prefix, and an already
// bare identifier passes through unchanged, so the function is idempotent.
func Normalize(spec string) string {
	s := strings.TrimSpace(spec)
	s = strings.TrimPrefix(s, "!")
	if i := strings.IndexAny(s, versionDelims); i >= 0 {
		s = s[:i]
	}
	return s
}

// NormalizeAll maps Normalize over a raw specifier list, dropping entries
// that normalize to the empty string.
func NormalizeAll(specs []string) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		if id := Normalize(s); id != "" {
			out = append(out, id)
		}
	}
	return out
}
