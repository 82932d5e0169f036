// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query holds helpers for building SQL query arguments.
*/
package query

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE metacharacters in term so that it matches
// literally under PostgreSQL's default backslash escape.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// Contains returns an ILIKE pattern matching term as a literal substring.
//
// Example:
//
//	query.Contains("100%") // Returns `%100\%%`
func Contains(term string) string {
	return "%" + EscapeLike(term) + "%"
}
