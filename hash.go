// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"strings"
	"unicode/utf16"

	"github.com/spaolacci/murmur3"
)

// hashSeed is the fixed seed the engine uses for path hashing.
const hashSeed uint32 = 0xFFFFFFFF

// NormalizeHashInput converts a path to the form the engine hashes:
// backslashes folded to forward slashes. Case folding happens inside the
// hash itself, so two case variants of one path always collide.
func NormalizeHashInput(path string) string {
	if !strings.ContainsRune(path, '\\') {
		return path
	}

	return strings.ReplaceAll(path, `\`, "/")
}

// utf16LEBytes encodes s as UTF-16 little-endian without a BOM.
func utf16LEBytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[i*2] = byte(u)
		out[i*2+1] = byte(u >> 8)
	}

	return out
}

// HashLower returns the engine hash of the lowercased normalized path.
// This is the low half of the 64-bit table-row hash.
func HashLower(path string) uint32 {
	normalized := NormalizeHashInput(path)
	return murmur3.Sum32WithSeed(utf16LEBytes(strings.ToLower(normalized)), hashSeed)
}

// HashUpper returns the engine hash of the uppercased normalized path.
// This is the high half of the 64-bit table-row hash.
func HashUpper(path string) uint32 {
	normalized := NormalizeHashInput(path)
	return murmur3.Sum32WithSeed(utf16LEBytes(strings.ToUpper(normalized)), hashSeed)
}

// HashMixed returns the 64-bit path hash stored in container entry rows:
// upper-case hash in the high 32 bits, lower-case hash in the low 32 bits.
func HashMixed(path string) uint64 {
	return uint64(HashUpper(path))<<32 | uint64(HashLower(path))
}
