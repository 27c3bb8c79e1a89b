package utils

import "strings"

// likeEscaper neutralizes the characters LIKE/ILIKE treat as wildcards.
// User text must pass through this before being embedded in a pattern,
// otherwise "100%" or "_" in a search query changes the match semantics.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE metacharacters so s matches as literal text.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds a case-insensitive substring ILIKE pattern
// from raw user text.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// JoinWithAnd joins a slice of SQL clauses with the AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}
