// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// fixtureEntry describes one table row for the container builders.
type fixtureEntry struct {
	hash         uint64
	stored       []byte
	uncompressed int64
	attributes   uint64
}

// appendContainerHeader appends a 16-byte container header.
func appendContainerHeader(buf []byte, major uint8, feature uint16, count uint32) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, containerMagic)
	buf = append(buf, major, 0)
	buf = binary.LittleEndian.AppendUint16(buf, feature)
	buf = binary.LittleEndian.AppendUint32(buf, count)
	buf = binary.LittleEndian.AppendUint32(buf, 0)

	return buf
}

// buildContainerV4 builds a version-4 container with payloads packed
// directly after the entry table.
func buildContainerV4(t *testing.T, entries []fixtureEntry) []byte {
	t.Helper()

	buf := appendContainerHeader(nil, containerVersion4, 0, uint32(len(entries)))

	offset := containerHeaderSize + entrySizeV4*len(entries)
	for _, e := range entries {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e.hash))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e.hash>>32))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(offset))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(e.stored)))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.uncompressed))
		buf = binary.LittleEndian.AppendUint64(buf, e.attributes)
		buf = binary.LittleEndian.AppendUint64(buf, 0)
		offset += len(e.stored)
	}

	for _, e := range entries {
		buf = append(buf, e.stored...)
	}

	return buf
}

// buildContainerV2 builds a version-2 container. Version 2 stores every
// payload raw, so the row carries a single size.
func buildContainerV2(t *testing.T, entries []fixtureEntry) []byte {
	t.Helper()

	buf := appendContainerHeader(nil, containerVersion2, 0, uint32(len(entries)))

	offset := containerHeaderSize + entrySizeV2*len(entries)
	for _, e := range entries {
		buf = binary.LittleEndian.AppendUint64(buf, e.hash)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(offset))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(e.stored)))
		offset += len(e.stored)
	}

	for _, e := range entries {
		buf = append(buf, e.stored...)
	}

	return buf
}

func TestParseArchive_V4(t *testing.T) {
	t.Parallel()

	first := []byte("first payload bytes")
	second := []byte("second payload")
	data := buildContainerV4(t, []fixtureEntry{
		{hash: 0x1C7C877481DBAF5C, stored: first, uncompressed: int64(len(first))},
		{hash: 0xC06678A193556719, stored: second, uncompressed: int64(len(second)), attributes: uint64(MethodNone)},
	})

	a, err := ParseArchive("fixture.pak", data)
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}

	if a.Version != containerVersion4 {
		t.Errorf("Version = %d, want %d", a.Version, containerVersion4)
	}
	if len(a.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(a.Entries))
	}
	if a.SkippedRows != 0 {
		t.Errorf("SkippedRows = %d, want 0", a.SkippedRows)
	}

	e := a.Entries[0]
	if e.Hash != 0x1C7C877481DBAF5C {
		t.Errorf("hash = %#x", e.Hash)
	}
	if e.Method() != MethodNone {
		t.Errorf("method = %s, want none", e.Method())
	}

	payload, err := a.EntryPayload(e)
	if err != nil {
		t.Fatalf("EntryPayload: %v", err)
	}
	if !bytes.Equal(payload, first) {
		t.Errorf("payload = %q, want %q", payload, first)
	}

	decoded, err := a.DecodeEntry(a.Entries[1])
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if !bytes.Equal(decoded, second) {
		t.Errorf("decoded = %q, want %q", decoded, second)
	}
}

func TestParseArchive_V2(t *testing.T) {
	t.Parallel()

	payload := []byte("raw stored payload")
	data := buildContainerV2(t, []fixtureEntry{
		{hash: 0x50E9D8464F390CA9, stored: payload},
	})

	a, err := ParseArchive("fixture2.pak", data)
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}

	if a.Version != containerVersion2 {
		t.Errorf("Version = %d, want %d", a.Version, containerVersion2)
	}
	if len(a.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(a.Entries))
	}

	e := a.Entries[0]
	if e.CompressedSize != e.UncompressedSize {
		t.Errorf("sizes differ: %d vs %d", e.CompressedSize, e.UncompressedSize)
	}
	if e.Method() != MethodNone {
		t.Errorf("method = %s, want none", e.Method())
	}

	decoded, err := a.DecodeEntry(e)
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("decoded = %q, want %q", decoded, payload)
	}
}

func TestParseArchive_BadMagic(t *testing.T) {
	t.Parallel()

	data := buildContainerV4(t, nil)
	data[0] = 'X'

	if _, err := ParseArchive("bad.pak", data); !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("err = %v, want ErrInvalidContainer", err)
	}
}

func TestParseArchive_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	data := appendContainerHeader(nil, 3, 0, 0)

	if _, err := ParseArchive("v3.pak", data); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestParseArchive_EncryptedTable(t *testing.T) {
	t.Parallel()

	for _, feature := range []uint16{featureEncryptedTable, featureEncryptedTableEx} {
		data := appendContainerHeader(nil, containerVersion4, feature, 0)

		if _, err := ParseArchive("enc.pak", data); !errors.Is(err, ErrUnsupportedFeature) {
			t.Fatalf("feature %#x: err = %v, want ErrUnsupportedFeature", feature, err)
		}
	}
}

func TestParseArchive_TruncatedHeader(t *testing.T) {
	t.Parallel()

	data := appendContainerHeader(nil, containerVersion4, 0, 0)

	if _, err := ParseArchive("short.pak", data[:10]); !errors.Is(err, ErrShortRead) {
		t.Fatalf("err = %v, want ErrShortRead", err)
	}
}

func TestParseArchive_TableExceedsFile(t *testing.T) {
	t.Parallel()

	// header claims 1000 rows but carries none
	data := appendContainerHeader(nil, containerVersion4, 0, 1000)

	if _, err := ParseArchive("liar.pak", data); !errors.Is(err, ErrShortRead) {
		t.Fatalf("err = %v, want ErrShortRead", err)
	}
}

func TestParseArchive_SkipsOutOfBoundsRow(t *testing.T) {
	t.Parallel()

	good := []byte("still readable")
	data := buildContainerV4(t, []fixtureEntry{
		{hash: 1, stored: []byte("doomed"), uncompressed: 6},
		{hash: 2, stored: good, uncompressed: int64(len(good))},
	})

	// point the first row's payload far past the end of the file
	binary.LittleEndian.PutUint64(data[containerHeaderSize+8:], 1<<40)

	a, err := ParseArchive("corrupt.pak", data)
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}

	if a.SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", a.SkippedRows)
	}
	if len(a.Entries) != 1 || a.Entries[0].Hash != 2 {
		t.Fatalf("surviving entries = %+v, want the second row only", a.Entries)
	}

	payload, err := a.EntryPayload(a.Entries[0])
	if err != nil {
		t.Fatalf("EntryPayload: %v", err)
	}
	if !bytes.Equal(payload, good) {
		t.Errorf("payload = %q, want %q", payload, good)
	}
}

func TestArchive_EntryByHash(t *testing.T) {
	t.Parallel()

	data := buildContainerV4(t, []fixtureEntry{
		{hash: 10, stored: []byte("aaaaa"), uncompressed: 5},
		{hash: 20, stored: []byte("bbbbb"), uncompressed: 5},
	})

	a, err := ParseArchive("lookup.pak", data)
	if err != nil {
		t.Fatalf("ParseArchive: %v", err)
	}

	if e, ok := a.EntryByHash(20); !ok || e.Hash != 20 {
		t.Errorf("EntryByHash(20) = %+v, %v", e, ok)
	}
	if _, ok := a.EntryByHash(30); ok {
		t.Error("EntryByHash(30) found a missing hash")
	}
}
