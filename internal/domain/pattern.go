package domain

import "strings"

// LikePattern derives the substring-match pattern passed to the catalog
// search functions. The term is trimmed of surrounding whitespace and
// wrapped in % markers. An empty trimmed term is passed through unchanged;
// the database function decides what emptiness means.
func LikePattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return term
	}
	return "%" + term + "%"
}
