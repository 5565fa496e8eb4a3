package models

import (
	"strings"
)

// Multi-valued attributes (modality, biological sex) are ordered string
// slices everywhere in the domain and comma-joined text only in storage.
// These two functions are the entire storage boundary for that encoding.

// JoinList serializes an ordered list to its stored form. An empty list is
// stored as NULL.
func JoinList(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	joined := strings.Join(values, ",")
	return &joined
}

// SplitList deserializes a stored comma-joined list.
func SplitList(stored *string) []string {
	if stored == nil || *stored == "" {
		return nil
	}
	return strings.Split(*stored, ",")
}
