// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"bytes"
	"io"
	"iter"
	"strings"
)

// Classification is the tagged result of classifying a byte pair at one
// scan position.
type Classification uint8

// Byte pair classes.
const (
	// Reject means the byte cannot belong to any path run.
	Reject Classification = iota
	// CandidateNarrow means the byte extends a single-byte text run.
	CandidateNarrow
	// CandidateWide means the pair extends a double-byte LE text run.
	CandidateWide
)

// wideTerminator anchors the wide scan: "/" encoded as UTF-16LE.
var wideTerminator = []byte{'/', 0}

// acceptPathByte reports whether b may appear in a path run: printable
// ASCII (space included) minus the rejected punctuation set.
func acceptPathByte(b byte, rejected string) bool {
	if b == ' ' {
		return true
	}
	if b < '!' || b > '~' {
		return false
	}

	return !strings.ContainsRune(rejected, rune(b))
}

// classifyPair classifies the byte pair (lo, hi) at one buffer position.
// A NUL high byte marks wide text; any other printable pair is narrow.
func classifyPair(lo, hi byte, rejected string) Classification {
	if !acceptPathByte(lo, rejected) {
		return Reject
	}
	if hi == 0 {
		return CandidateWide
	}

	return CandidateNarrow
}

// candidateValid reports whether a decoded run qualifies as a candidate:
// long enough and carrying either a separator or an extension marker.
func candidateValid(text string, opts *ScanOptions) bool {
	if len(text) < opts.MinLength || len(text) > opts.MaxLength {
		return false
	}

	tail, hasSep := splitTail(text)
	if hasSep && validTail(tail) {
		return true
	}
	if opts.RequireSeparator {
		return false
	}

	return hasExtensionMarker(text)
}

// ScanBuffer returns a lazy, restartable sequence of path candidates found
// in data. The same buffer may be scanned repeatedly with different modes
// or options. An unknown mode scans both encodings.
func ScanBuffer(data []byte, mode ScanMode, opts ScanOptions) iter.Seq[Candidate] {
	opts.applyDefaults()

	return func(yield func(Candidate) bool) {
		if mode != ScanWide {
			if !scanNarrow(data, &opts, yield) {
				return
			}
		}

		if mode != ScanNarrow {
			scanWide(data, &opts, yield)
		}
	}
}

// scanNarrow emits single-byte text runs. A run grows while bytes pass the
// accept table and terminates on the first invalid byte or buffer end.
func scanNarrow(data []byte, opts *ScanOptions, yield func(Candidate) bool) bool {
	start := -1
	flush := func(end int) bool {
		if start < 0 {
			return true
		}

		text := string(data[start:end])
		off := int64(start)
		start = -1
		if !candidateValid(text, opts) {
			return true
		}

		return yield(Candidate{Text: text, Source: opts.Source, Offset: off})
	}

	for i := 0; i < len(data); i++ {
		if acceptPathByte(data[i], opts.RejectedPunct) {
			if start < 0 {
				start = i
			}
			continue
		}

		if !flush(i) {
			return false
		}
	}

	return flush(len(data))
}

// scanWide emits double-byte LE text runs. The scan anchors on encoded "/"
// pairs and expands backward and forward while pairs stay in class
// CandidateWide, so it finds paths at either byte alignment.
func scanWide(data []byte, opts *ScanOptions, yield func(Candidate) bool) bool {
	pos := 0

	for {
		idx := bytes.Index(data[pos:], wideTerminator)
		if idx < 0 {
			return true
		}

		slashPos := pos + idx
		pos = min(slashPos+2, len(data))

		begin := slashPos
		for begin >= 2 {
			prior := begin - 2
			if classifyPair(data[prior], data[prior+1], opts.RejectedPunct) != CandidateWide {
				break
			}
			begin = prior
		}
		if begin == slashPos {
			// slash with no head is never a path
			continue
		}

		end := slashPos + 2
		for end+1 < len(data) {
			if classifyPair(data[end], data[end+1], opts.RejectedPunct) != CandidateWide {
				break
			}
			end += 2
		}
		pos = min(end+2, len(data))

		text := decodeWideRun(data[begin:end])
		if !candidateValid(text, opts) {
			continue
		}

		if !yield(Candidate{Text: text, Source: opts.Source, Offset: int64(begin), Wide: true}) {
			return false
		}
	}
}

// decodeWideRun decodes an accepted UTF-16LE run. Accepted pairs are
// always printable ASCII with a NUL high byte, so the low bytes are the
// string.
func decodeWideRun(run []byte) string {
	out := make([]byte, len(run)/2)
	for i := range out {
		out[i] = run[i*2]
	}

	return string(out)
}

// ScanReader streams candidates from r in fixed-size windows with enough
// overlap that a path straddling a window boundary is still found whole.
// Unlike ScanBuffer the sequence is single-use: it consumes the reader.
// A read failure is yielded once as the final element.
func ScanReader(r io.Reader, mode ScanMode, opts ScanOptions) iter.Seq2[Candidate, error] {
	opts.applyDefaults()

	// Overlap must exceed the longest representable candidate (wide text
	// is two bytes per character) so truncation only affects runs that are
	// over the length limit anyway.
	overlap := opts.MaxLength*2 + 2
	window := opts.WindowSize
	if window <= overlap*2 {
		window = overlap * 4
	}

	return func(yield func(Candidate, error) bool) {
		buf := make([]byte, window)
		carried := 0
		base := int64(0)

		for {
			n, err := io.ReadFull(r, buf[carried:])
			total := carried + n
			eof := err == io.EOF || err == io.ErrUnexpectedEOF
			if err != nil && !eof {
				yield(Candidate{}, err)
				return
			}

			chunk := buf[:total]
			emitLimit := total
			if !eof {
				emitLimit = total - overlap
			}

			for c := range ScanBuffer(chunk, mode, opts) {
				if !eof && c.Offset >= int64(emitLimit) {
					// straddles the window edge; the next window re-finds it
					continue
				}

				c.Offset += base
				if !yield(c, nil) {
					return
				}
			}

			if eof {
				return
			}

			copy(buf, buf[total-overlap:total])
			carried = overlap
			base += int64(total - overlap)
		}
	}
}
