// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"errors"
	"fmt"
)

// Archive is one parsed container: validated header metadata plus the
// entry table. The raw bytes are retained so entry payloads can be
// decoded and scanned later in the run.
type Archive struct {
	// Name labels the container in diagnostics.
	Name string `json:"name" yaml:"name"`
	// Entries are the table rows that passed local validation.
	Entries []Entry `json:"entries" yaml:"entries"`
	// SkippedRows counts table rows dropped by local validation.
	SkippedRows int `json:"skipped_rows,omitempty" yaml:"skipped_rows,omitempty"`
	// Version is the container major version.
	Version uint8 `json:"version" yaml:"version"`

	data []byte
}

// ParseArchive parses one container file held fully in memory.
//
// A malformed header (bad magic, unsupported version or feature, table
// not fitting the file) is fatal for this file and returns an error.
// Individual rows whose offsets or sizes fall outside the file are
// skipped and counted in SkippedRows, never aborting the parse.
func ParseArchive(name string, data []byte) (*Archive, error) {
	cur := NewCursor(data)

	header, err := parseContainerHeader(cur)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	rowSize := entrySize(header.Major)
	tableSize := int64(header.EntryCount) * int64(rowSize)
	if tableSize > int64(cur.Remaining()) {
		return nil, fmt.Errorf("parse %s: %w: table of %d rows exceeds file size",
			name, ErrShortRead, header.EntryCount)
	}

	a := &Archive{
		Name:    name,
		Version: header.Major,
		Entries: make([]Entry, 0, header.EntryCount),
		data:    data,
	}

	for i := uint32(0); i < header.EntryCount; i++ {
		entry, err := a.parseRow(cur, header.Major)
		if err != nil {
			if errors.Is(err, ErrShortRead) {
				// table truncated mid-row; the remaining rows are unreadable
				a.SkippedRows += int(header.EntryCount - i)
				break
			}

			a.SkippedRows++
			continue
		}

		a.Entries = append(a.Entries, entry)
	}

	return a, nil
}

// parseRow reads and locally validates one table row.
func (a *Archive) parseRow(cur *Cursor, major uint8) (Entry, error) {
	var (
		entry Entry
		err   error
	)

	if major == containerVersion2 {
		entry, err = parseEntryV2(cur)
	} else {
		entry, err = parseEntryV4(cur)
	}
	if err != nil {
		return Entry{}, err
	}

	if err := a.validateBounds(entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// validateBounds checks that an entry payload lies inside the file.
func (a *Archive) validateBounds(e Entry) error {
	if e.Offset < 0 || e.CompressedSize < 0 || e.UncompressedSize < 0 {
		return fmt.Errorf("%w: negative field in row", ErrShortRead)
	}

	end := e.Offset + e.CompressedSize
	if end < e.Offset || end > int64(len(a.data)) {
		return fmt.Errorf("%w: payload [%d..%d) outside %d-byte file",
			ErrShortRead, e.Offset, end, len(a.data))
	}

	return nil
}

// EntryPayload returns the stored (still compressed) payload bytes of one
// entry. The slice aliases the archive buffer.
func (a *Archive) EntryPayload(e Entry) ([]byte, error) {
	if err := a.validateBounds(e); err != nil {
		return nil, err
	}

	return a.data[e.Offset : e.Offset+e.CompressedSize], nil
}

// DecodeEntry returns the decoded payload bytes of one entry according to
// its compression method tag.
func (a *Archive) DecodeEntry(e Entry) ([]byte, error) {
	payload, err := a.EntryPayload(e)
	if err != nil {
		return nil, err
	}

	return decodePayload(e.Method(), payload, e.UncompressedSize)
}

// EntryByHash returns the first entry with the given mixed path hash.
func (a *Archive) EntryByHash(hash uint64) (Entry, bool) {
	for i := range a.Entries {
		if a.Entries[i].Hash == hash {
			return a.Entries[i], true
		}
	}

	return Entry{}, false
}
