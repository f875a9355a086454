// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import "testing"

// hashVectors pins the engine hash bit-exactly. Values are cross-checked
// against the reference murmur3 implementation over the UTF-16LE encoding
// of the case-folded path.
var hashVectors = []struct {
	path  string
	lower uint32
	upper uint32
	mixed uint64
}{
	{"chunk/data/foo.tex", 0x81DBAF5C, 0x1C7C8774, 0x1C7C877481DBAF5C},
	{"a/b.c", 0x93556719, 0xC06678A1, 0xC06678A193556719},
	{
		"natives/stm/gamedesign/catalog/00_00/data/enemypackagelist.user.3",
		0x4F390CA9, 0x50E9D846, 0x50E9D8464F390CA9,
	},
	{"natives/STM/Sound/Bank/Main.sbnk.1", 0x2E5DBEC0, 0x2C31B44B, 0x2C31B44B2E5DBEC0},
	{
		"natives/stm/streaming/sound/bank/main.sbnk.1",
		0x1965EF78, 0x12BAA426, 0x12BAA4261965EF78,
	},
	{"art/models/chr/pl000/pl000.mesh.241111606", 0xB0370C66, 0xE5C2549B, 0xE5C2549BB0370C66},
}

// TestHash_Vectors verifies the hash against known (path, hash) pairs.
func TestHash_Vectors(t *testing.T) {
	for _, v := range hashVectors {
		t.Run(v.path, func(t *testing.T) {
			if got := HashLower(v.path); got != v.lower {
				t.Errorf("HashLower = %#08x, want %#08x", got, v.lower)
			}
			if got := HashUpper(v.path); got != v.upper {
				t.Errorf("HashUpper = %#08x, want %#08x", got, v.upper)
			}
			if got := HashMixed(v.path); got != v.mixed {
				t.Errorf("HashMixed = %#016x, want %#016x", got, v.mixed)
			}
		})
	}
}

// TestHash_Deterministic verifies repeated calls return identical values.
func TestHash_Deterministic(t *testing.T) {
	const path = "natives/stm/gamedesign/foo.user.3"

	first := HashMixed(path)
	for i := 0; i < 100; i++ {
		if got := HashMixed(path); got != first {
			t.Fatalf("call %d: HashMixed = %#x, want %#x", i, got, first)
		}
	}
}

// TestHash_CaseAndSeparatorEquivalence verifies the engine equivalences:
// case variants and separator variants of one path share a hash.
func TestHash_CaseAndSeparatorEquivalence(t *testing.T) {
	variants := []string{
		"chunk/data/foo.tex",
		"CHUNK/DATA/FOO.TEX",
		"Chunk/Data/Foo.Tex",
		`chunk\data\foo.tex`,
		`Chunk\Data\FOO.tex`,
	}

	want := HashMixed(variants[0])
	for _, v := range variants[1:] {
		if got := HashMixed(v); got != want {
			t.Errorf("HashMixed(%q) = %#x, want %#x", v, got, want)
		}
	}
}

// TestHash_DistinctPaths verifies different paths do not trivially collide.
func TestHash_DistinctPaths(t *testing.T) {
	if HashMixed("a/b.c") == HashMixed("a/b.d") {
		t.Fatal("distinct paths share a mixed hash")
	}
}
