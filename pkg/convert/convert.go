// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides small conversions for query-string values.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if it is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// OptionalInt parses an optional integer filter.
//
// An empty string yields (nil, true). A malformed value yields (nil, false) so
// the caller can report it instead of silently dropping the filter.
func OptionalInt(str string) (*int, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, true
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		return nil, false
	}
	return &v, true
}
