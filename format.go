// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import "fmt"

// Container binary layout constants.
const (
	// containerMagic is "KPKA" stored little-endian.
	containerMagic = 0x414B504B
	// containerHeaderSize is the fixed header size in bytes.
	containerHeaderSize = 16
	// entrySizeV2 is the size of a version-2 table row.
	entrySizeV2 = 24
	// entrySizeV4 is the size of a version-4 table row.
	entrySizeV4 = 48
	// Supported major versions.
	containerVersion2 = 2
	containerVersion4 = 4
)

// Feature flag bits from the container header. Tables carrying either
// encryption bit cannot be read without the engine key schedule.
const (
	featureEncryptedTable   = 0x08
	featureEncryptedTableEx = 0x10
)

// CompressionMethod is the entry attribute tag selecting payload encoding.
type CompressionMethod uint8

// Payload compression method tags.
const (
	// MethodNone marks raw stored payload.
	MethodNone CompressionMethod = 0
	// MethodDeflate marks raw DEFLATE payload.
	MethodDeflate CompressionMethod = 1
	// MethodZstd marks zstandard payload.
	MethodZstd CompressionMethod = 2
	// MethodLZSS marks LZSS payload used by older container revisions.
	MethodLZSS CompressionMethod = 3
)

// String returns the method name for diagnostics.
func (m CompressionMethod) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodDeflate:
		return "deflate"
	case MethodZstd:
		return "zstd"
	case MethodLZSS:
		return "lzss"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// containerHeader is the fixed 16-byte container header.
type containerHeader struct {
	// Magic must equal containerMagic.
	Magic uint32
	// Major selects the table-row layout (2 or 4).
	Major uint8
	// Minor is informational only.
	Minor uint8
	// Feature carries format flag bits.
	Feature uint16
	// EntryCount is the number of table rows following the header.
	EntryCount uint32
	// Fingerprint is an opaque build fingerprint, not validated.
	Fingerprint uint32
}

// Entry is one parsed container table row: a path hash plus payload
// location metadata. The path itself is not stored; only its hash.
type Entry struct {
	// Hash is the 64-bit mixed path hash (see HashMixed).
	Hash uint64 `json:"hash" yaml:"hash"`
	// Offset is the absolute payload offset in the container.
	Offset int64 `json:"offset" yaml:"offset"`
	// CompressedSize is the stored payload size in bytes.
	CompressedSize int64 `json:"compressed_size" yaml:"compressed_size"`
	// UncompressedSize is the decoded payload size in bytes.
	UncompressedSize int64 `json:"uncompressed_size" yaml:"uncompressed_size"`
	// Attributes carries the method tag in its low nibble.
	Attributes uint64 `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// Checksum is the stored payload checksum; opaque to this reader.
	Checksum uint64 `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// Method returns the payload compression method tag for this entry.
func (e *Entry) Method() CompressionMethod {
	return CompressionMethod(e.Attributes & 0xF)
}

// parseContainerHeader reads and validates the fixed container header.
func parseContainerHeader(cur *Cursor) (containerHeader, error) {
	var h containerHeader

	if cur.Remaining() < containerHeaderSize {
		return h, fmt.Errorf("%w: short container header", ErrShortRead)
	}

	var err error
	if h.Magic, err = cur.Uint32(); err != nil {
		return h, err
	}
	if h.Magic != containerMagic {
		return h, fmt.Errorf("%w: got 0x%08X", ErrInvalidContainer, h.Magic)
	}

	if h.Major, err = cur.Uint8(); err != nil {
		return h, err
	}
	if h.Minor, err = cur.Uint8(); err != nil {
		return h, err
	}
	if h.Feature, err = cur.Uint16(); err != nil {
		return h, err
	}
	if h.EntryCount, err = cur.Uint32(); err != nil {
		return h, err
	}
	if h.Fingerprint, err = cur.Uint32(); err != nil {
		return h, err
	}

	if h.Major != containerVersion2 && h.Major != containerVersion4 {
		return h, fmt.Errorf("%w: major %d", ErrUnsupportedVersion, h.Major)
	}

	if h.Feature&(featureEncryptedTable|featureEncryptedTableEx) != 0 {
		return h, fmt.Errorf("%w: encrypted entry table (feature 0x%04X)", ErrUnsupportedFeature, h.Feature)
	}

	return h, nil
}

// entrySize returns the table-row size for a supported major version.
func entrySize(major uint8) int {
	if major == containerVersion2 {
		return entrySizeV2
	}

	return entrySizeV4
}

// parseEntryV2 reads one version-2 table row: hash, offset, size.
// Version 2 stores payloads raw, so both sizes are equal.
func parseEntryV2(cur *Cursor) (Entry, error) {
	var e Entry

	hash, err := cur.Uint64()
	if err != nil {
		return e, err
	}
	offset, err := cur.Uint64()
	if err != nil {
		return e, err
	}
	size, err := cur.Uint64()
	if err != nil {
		return e, err
	}

	e.Hash = hash
	e.Offset = int64(offset) //nolint:gosec // validated against file bounds by caller
	e.CompressedSize = int64(size)
	e.UncompressedSize = int64(size)
	return e, nil
}

// parseEntryV4 reads one version-4 table row.
func parseEntryV4(cur *Cursor) (Entry, error) {
	var e Entry

	lower, err := cur.Uint32()
	if err != nil {
		return e, err
	}
	upper, err := cur.Uint32()
	if err != nil {
		return e, err
	}
	offset, err := cur.Uint64()
	if err != nil {
		return e, err
	}
	compressed, err := cur.Uint64()
	if err != nil {
		return e, err
	}
	uncompressed, err := cur.Uint64()
	if err != nil {
		return e, err
	}
	attributes, err := cur.Uint64()
	if err != nil {
		return e, err
	}
	checksum, err := cur.Uint64()
	if err != nil {
		return e, err
	}

	e.Hash = uint64(upper)<<32 | uint64(lower)
	e.Offset = int64(offset)             //nolint:gosec // validated against file bounds by caller
	e.CompressedSize = int64(compressed) //nolint:gosec // validated against file bounds by caller
	e.UncompressedSize = int64(uncompressed)
	e.Attributes = attributes
	e.Checksum = checksum
	return e, nil
}
