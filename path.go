// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import "strings"

// NormalizePath converts a recovered path to the canonical slash-separated
// form used for hashing and aggregation: spaces trimmed, backslashes folded
// to "/", leading "@" anchors and leading slashes dropped.
func NormalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = NormalizeHashInput(raw)
	for len(raw) > 0 && (raw[0] == '@' || raw[0] == '/') {
		raw = raw[1:]
	}

	return raw
}

// pathKey returns the case-insensitive aggregation key for a normalized path.
func pathKey(normalized string) string {
	return strings.ToLower(normalized)
}

// splitTail returns the last path segment and whether a separator exists.
func splitTail(path string) (string, bool) {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path, false
	}

	return path[idx+1:], true
}

// validTail reports whether the last path segment has the dir/name.ext
// shape: a dot that is neither its first nor last character.
func validTail(tail string) bool {
	dot := strings.IndexByte(tail, '.')
	return dot > 0 && dot < len(tail)-1
}

// hasExtensionMarker reports whether path ends with a dot followed by
// 2..5 alphanumeric characters, optionally behind a trailing numeric
// format-version suffix.
func hasExtensionMarker(path string) bool {
	tail := path
	if dot := strings.LastIndexByte(tail, '.'); dot >= 0 && isAllDigits(tail[dot+1:]) {
		// numeric format-version suffix, look at the extension before it
		tail = tail[:dot]
	}

	dot := strings.LastIndexByte(tail, '.')
	if dot <= 0 {
		return false
	}

	ext := tail[dot+1:]
	if len(ext) < 2 || len(ext) > 5 {
		return false
	}
	for i := 0; i < len(ext); i++ {
		if !isAlphanumeric(ext[i]) {
			return false
		}
	}

	return true
}

// isAllDigits reports whether s is non-empty and contains only ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isAlphanumeric reports whether b is an ASCII letter or digit.
func isAlphanumeric(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	default:
		return false
	}
}
