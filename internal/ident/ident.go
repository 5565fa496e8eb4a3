// Package ident encodes and decodes the public, human-facing identifiers of
// the dictionary: element sets ("RDES12") and elements ("RDE7"). Decoding is
// case-insensitive on the prefix and never fails with a panic; malformed
// input is reported through the ok result.
package ident

import (
	"strconv"
	"strings"
)

const (
	// SetPrefix is the public prefix of element set identifiers.
	SetPrefix = "RDES"
	// ElementPrefix is the public prefix of element identifiers.
	ElementPrefix = "RDE"
)

// EncodeSetID renders an internal set id in its public form, e.g. 12 -> "RDES12".
func EncodeSetID(id uint64) string {
	return SetPrefix + strconv.FormatUint(id, 10)
}

// EncodeElementID renders an internal element id in its public form, e.g. 7 -> "RDE7".
func EncodeElementID(id uint64) string {
	return ElementPrefix + strconv.FormatUint(id, 10)
}

// DecodeSetID parses a public set identifier. ok is false when the prefix is
// wrong, nothing follows the prefix, or the remainder is not a non-negative
// decimal number.
func DecodeSetID(publicID string) (uint64, bool) {
	return decode(publicID, SetPrefix)
}

// DecodeElementID parses a public element identifier.
func DecodeElementID(publicID string) (uint64, bool) {
	return decode(publicID, ElementPrefix)
}

func decode(publicID, prefix string) (uint64, bool) {
	if len(publicID) <= len(prefix) {
		return 0, false
	}
	if !strings.EqualFold(publicID[:len(prefix)], prefix) {
		return 0, false
	}
	id, err := strconv.ParseUint(publicID[len(prefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
