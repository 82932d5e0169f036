// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

PATCH payloads decode into pointer fields so that "absent" and "zero" stay
distinguishable; these helpers keep the merge code short.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Fallback dereferences p, returning fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Apply overwrites *dst with *src when src is not nil.
func Apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
