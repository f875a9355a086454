// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"log/slog"

	"github.com/woozymasta/pathrules"
)

// Default scan tuning values. The punctuation set and length bounds are
// empirically tuned against the fixture corpus; override them via
// ScanOptions only with fixture validation.
const (
	// DefaultMinCandidateLength is the minimum candidate length in characters.
	DefaultMinCandidateLength = 5
	// DefaultMaxCandidateLength is the maximum candidate length in characters.
	DefaultMaxCandidateLength = 512
	// DefaultRejectedPunct lists printable ASCII bytes never valid in a path.
	DefaultRejectedPunct = `"*\:<>?|`
	// DefaultScanWindowSize is the window size for streaming reader scans.
	DefaultScanWindowSize = 4 << 20 // 4 MiB
)

// ScanMode selects which character encodings a scan pass interprets.
type ScanMode string

// Scan encoding modes.
const (
	// ScanNarrow scans single-byte text only.
	ScanNarrow ScanMode = "narrow"
	// ScanWide scans double-byte little-endian text only.
	ScanWide ScanMode = "wide"
	// ScanBoth runs both passes and merges results.
	ScanBoth ScanMode = "both"
)

// ScanOptions configures candidate extraction.
type ScanOptions struct {
	// Source labels emitted candidates for diagnostics (file name).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// RejectedPunct is the set of printable bytes that terminate a run.
	RejectedPunct string `json:"rejected_punct,omitempty" yaml:"rejected_punct,omitempty"`
	// MinLength is the minimum candidate length in characters.
	MinLength int `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	// MaxLength is the maximum candidate length in characters.
	MaxLength int `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	// WindowSize is the streaming window size for ScanReader.
	WindowSize int `json:"window_size,omitempty" yaml:"window_size,omitempty"`
	// RequireSeparator drops candidates without a "/" even when they carry
	// an extension marker.
	RequireSeparator bool `json:"require_separator,omitempty" yaml:"require_separator,omitempty"`
}

// applyDefaults fills zero-valued scan options with defaults.
func (opts *ScanOptions) applyDefaults() {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinCandidateLength
	}

	if opts.MaxLength <= 0 || opts.MaxLength < opts.MinLength {
		opts.MaxLength = DefaultMaxCandidateLength
	}

	if opts.RejectedPunct == "" {
		opts.RejectedPunct = DefaultRejectedPunct
	}

	if opts.WindowSize < opts.MaxLength*4 {
		opts.WindowSize = DefaultScanWindowSize
	}
}

// Candidate is a byte run that looks like a path but is unverified until
// its hash is checked. Candidates are ephemeral; only confirmed matches
// survive a run.
type Candidate struct {
	// Text is the decoded candidate string.
	Text string `json:"text" yaml:"text"`
	// Source is the input label the candidate was extracted from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Offset is the byte offset of the run inside its source.
	Offset int64 `json:"offset" yaml:"offset"`
	// Wide reports whether the run was decoded as double-byte text.
	Wide bool `json:"wide,omitempty" yaml:"wide,omitempty"`
}

// ConfirmedPath is a candidate whose hash matched the run's hash set.
type ConfirmedPath struct {
	// Path is the normalized recovered path.
	Path string `json:"path" yaml:"path"`
	// Source is the input the confirming candidate came from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Offset is the candidate offset inside Source.
	Offset int64 `json:"offset" yaml:"offset"`
	// Hash is the matched 64-bit path hash.
	Hash uint64 `json:"hash" yaml:"hash"`
	// Expanded lists full container forms confirmed via suffix expansion.
	Expanded []string `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// RunOptions configures a recovery run context.
type RunOptions struct {
	// Logger receives diagnostics; nil discards them.
	Logger *slog.Logger `json:"-" yaml:"-"`
	// Config supplies suffix/language/prefix tables; nil uses defaults.
	Config *SearchConfig `json:"config,omitempty" yaml:"config,omitempty"`
	// Scan is the default candidate extraction tuning for this run.
	Scan ScanOptions `json:"scan,omitzero" yaml:"scan,omitzero"`
	// Include defines ordered result rules; empty keeps every path.
	Include []pathrules.Rule `json:"include,omitempty" yaml:"include,omitempty"`
	// MatcherOptions control result rule matching.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
	// DisableExpansion turns off suffix/i18n expansion of candidates.
	DisableExpansion bool `json:"disable_expansion,omitempty" yaml:"disable_expansion,omitempty"`
	// KeepBinaryPayloads scans entry payloads whose magic marks known
	// binary formats instead of skipping them.
	KeepBinaryPayloads bool `json:"keep_binary_payloads,omitempty" yaml:"keep_binary_payloads,omitempty"`
}

// applyDefaults fills zero-valued run options with defaults.
func (opts *RunOptions) applyDefaults() {
	opts.Scan.applyDefaults()

	if opts.Config == nil {
		opts.Config = DefaultSearchConfig()
	}

	if opts.MatcherOptions == (pathrules.MatcherOptions{}) {
		opts.MatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionInclude,
		}
	}
}

// SearchOptions configures multi-file orchestration.
type SearchOptions struct {
	// Workers bounds parallel file tasks (zero means GOMAXPROCS).
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
	// DumpScanMode is the encoding mode for memory-dump scans.
	DumpScanMode ScanMode `json:"dump_scan_mode,omitempty" yaml:"dump_scan_mode,omitempty"`
	// EntryScanMode is the encoding mode for archive payload scans.
	EntryScanMode ScanMode `json:"entry_scan_mode,omitempty" yaml:"entry_scan_mode,omitempty"`
}

// applyDefaults fills zero-valued search options with defaults.
func (opts *SearchOptions) applyDefaults() {
	if opts.DumpScanMode == "" {
		opts.DumpScanMode = ScanBoth
	}

	if opts.EntryScanMode == "" {
		opts.EntryScanMode = ScanBoth
	}
}

// Buffer is one named in-memory input file.
type Buffer struct {
	// Name labels the input in diagnostics and candidate sources.
	Name string `json:"name" yaml:"name"`
	// Data is the full file content.
	Data []byte `json:"-" yaml:"-"`
}

// FileError records one per-file failure that did not abort the run.
type FileError struct {
	// Name is the failed input label.
	Name string `json:"name" yaml:"name"`
	// Err is the underlying failure.
	Err error `json:"-" yaml:"-"`
}

// Error returns the formatted per-file failure.
func (e FileError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

// Unwrap exposes the underlying failure to errors.Is.
func (e FileError) Unwrap() error {
	return e.Err
}

// Stats is a snapshot of run counters.
type Stats struct {
	// ArchivesParsed is the number of successfully parsed containers.
	ArchivesParsed int64 `json:"archives_parsed" yaml:"archives_parsed"`
	// EntriesIndexed is the number of table rows added to the hash set.
	EntriesIndexed int64 `json:"entries_indexed" yaml:"entries_indexed"`
	// RowsSkipped is the number of malformed table rows skipped.
	RowsSkipped int64 `json:"rows_skipped" yaml:"rows_skipped"`
	// PayloadsSkipped is the number of entry payloads not scanned.
	PayloadsSkipped int64 `json:"payloads_skipped" yaml:"payloads_skipped"`
	// FilesFailed is the number of inputs dropped with a per-file error.
	FilesFailed int64 `json:"files_failed" yaml:"files_failed"`
	// CandidatesScanned is the number of candidates passed to Resolve.
	CandidatesScanned int64 `json:"candidates_scanned" yaml:"candidates_scanned"`
	// PathsConfirmed is the number of hash-confirmed resolutions.
	PathsConfirmed int64 `json:"paths_confirmed" yaml:"paths_confirmed"`
	// PathsUnknown is the number of plausible candidates with no match.
	PathsUnknown int64 `json:"paths_unknown" yaml:"paths_unknown"`
}

// SearchResult is the outcome of one multi-file search.
type SearchResult struct {
	// Paths is the final sorted, deduplicated recovered path list.
	Paths []string `json:"paths" yaml:"paths"`
	// Unknown lists plausible unmatched paths for manual review.
	Unknown []string `json:"unknown,omitempty" yaml:"unknown,omitempty"`
	// Errors lists per-file failures that were skipped.
	Errors []FileError `json:"errors,omitempty" yaml:"errors,omitempty"`
	// Stats is the final counter snapshot.
	Stats Stats `json:"stats" yaml:"stats"`
}
