package repository

import "strings"

// likeEscaper neutralizes LIKE metacharacters so user input always matches
// literally. Clauses using the escaped value must carry ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a containment pattern for free-text search. The value is
// lowered so a LOWER(column) LIKE comparison is case-insensitive on every
// dialect; Postgres LIKE is case-sensitive on its own.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
