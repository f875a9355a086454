// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"encoding/binary"
	"fmt"

	"github.com/woozymasta/pathrules"
)

// Known payload magics that never carry embedded path text. Skipping them
// saves the scan pass on texture, sound-bank, and stream-package entries.
const (
	magicTex = 0x00584554 // "TEX\x00"
	magicBnk = 0x44484B42 // "BKHD"
	magicPck = 0x4B504B41 // "AKPK"
	magicMsg = 0x47534D47 // "GMSG" at offset 4
)

// skipPayloadMagic reports whether a decoded payload starts with a magic
// marking a known binary asset format not worth scanning.
func skipPayloadMagic(data []byte) bool {
	if len(data) < 8 {
		// too small to carry a path
		return true
	}

	switch binary.LittleEndian.Uint32(data[0:4]) {
	case magicTex, magicBnk, magicPck:
		return true
	}

	return binary.LittleEndian.Uint32(data[4:8]) == magicMsg
}

// resultMatcher holds compiled include/exclude rules for final output.
type resultMatcher struct {
	matcher *pathrules.Matcher
}

// newResultMatcher compiles result path rules. Empty rules disable matching.
func newResultMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*resultMatcher, error) {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := NormalizePath(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	if len(normalized) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(normalized, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidFilterPattern, err)
	}

	return &resultMatcher{matcher: matcher}, nil
}

// Match reports whether path passes the compiled result rules.
// A nil matcher keeps everything.
func (m *resultMatcher) Match(path string) bool {
	if m == nil || m.matcher == nil {
		return true
	}

	candidate := NormalizePath(path)
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}
