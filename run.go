// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// Run is one path-recovery run context. It owns the hash set accumulated
// from ingested archives, the confirmed-path aggregate, and the unknown
// side channel. There is no process-wide state; several runs can coexist.
//
// IngestArchive may be called concurrently from multiple goroutines.
// Resolve may also run concurrently, but a candidate resolved before its
// matching archive finished ingesting will be missed; process all
// archives first for complete results (Search does this).
type Run struct {
	log     *slog.Logger
	hashes  map[uint64]string
	known   map[string]string
	unknown map[string]struct{}
	matcher *resultMatcher
	opts    RunOptions

	archives []*Archive

	mu    sync.RWMutex
	stats runStats
}

// runStats holds live run counters.
type runStats struct {
	archivesParsed    atomic.Int64
	entriesIndexed    atomic.Int64
	rowsSkipped       atomic.Int64
	payloadsSkipped   atomic.Int64
	filesFailed       atomic.Int64
	candidatesScanned atomic.Int64
	pathsConfirmed    atomic.Int64
	pathsUnknown      atomic.Int64
}

// NewRun creates a run context. Option errors (bad result rule patterns)
// fail construction.
func NewRun(opts RunOptions) (*Run, error) {
	opts.applyDefaults()
	opts.Config.normalize()

	matcher, err := newResultMatcher(opts.Include, opts.MatcherOptions)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Run{
		log:     logger,
		opts:    opts,
		matcher: matcher,
		hashes:  make(map[uint64]string),
		known:   make(map[string]string),
		unknown: make(map[string]struct{}),
	}, nil
}

// IngestArchive parses one container and inserts every surviving row's
// hash into the run's hash set. The archive is retained so its entry
// payloads can be scanned later. Returns the parsed archive; header-level
// failures are fatal for this file only.
func (r *Run) IngestArchive(name string, data []byte) (*Archive, error) {
	if r == nil {
		return nil, ErrNilRun
	}

	a, err := ParseArchive(name, data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	for i := range a.Entries {
		if _, ok := r.hashes[a.Entries[i].Hash]; !ok {
			r.hashes[a.Entries[i].Hash] = ""
		}
	}
	r.archives = append(r.archives, a)
	r.mu.Unlock()

	r.stats.archivesParsed.Add(1)
	r.stats.entriesIndexed.Add(int64(len(a.Entries)))
	r.stats.rowsSkipped.Add(int64(a.SkippedRows))

	if a.SkippedRows > 0 {
		r.log.Warn("skipped malformed table rows",
			"archive", name, "rows", a.SkippedRows)
	}
	r.log.Info("archive ingested",
		"archive", name, "version", a.Version, "entries", len(a.Entries))

	return a, nil
}

// InsertKnownPath records a path whose text is already known (for example
// decoded in-band from an entry payload) into the hash set, keyed by its
// own hash.
func (r *Run) InsertKnownPath(path string) {
	if r == nil {
		return
	}

	normalized := NormalizePath(path)
	if normalized == "" {
		return
	}

	r.mu.Lock()
	r.hashes[HashMixed(normalized)] = normalized
	r.mu.Unlock()
}

// HashCount returns the number of distinct path hashes accumulated.
func (r *Run) HashCount() int {
	if r == nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hashes)
}

// containsHash reports whether the mixed hash is in the run's hash set.
func (r *Run) containsHash(hash uint64) bool {
	r.mu.RLock()
	_, ok := r.hashes[hash]
	r.mu.RUnlock()
	return ok
}

// Archives returns the archives ingested so far, in ingest order.
func (r *Run) Archives() []*Archive {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Archive, len(r.archives))
	copy(out, r.archives)
	return out
}

// Resolve checks one candidate against the hash set: first the candidate
// text itself, then — unless expansion is disabled — its full container
// forms via suffix expansion. A hit records the confirmed path(s) into
// the aggregate and returns the binding. A miss is the common case and is
// silent; plausible path-shaped misses go to the unknown side channel.
// Resolve never mutates the hash set.
func (r *Run) Resolve(c Candidate) (ConfirmedPath, bool) {
	if r == nil {
		return ConfirmedPath{}, false
	}

	r.stats.candidatesScanned.Add(1)

	text := NormalizePath(c.Text)
	if text == "" {
		return ConfirmedPath{}, false
	}

	hash := HashMixed(text)
	if r.containsHash(hash) {
		r.recordConfirmed(text)
		r.stats.pathsConfirmed.Add(1)
		return ConfirmedPath{Path: text, Source: c.Source, Offset: c.Offset, Hash: hash}, true
	}

	if !r.opts.DisableExpansion {
		if expanded := r.expandCandidate(text); len(expanded) > 0 {
			for _, full := range expanded {
				r.recordConfirmed(full)
			}
			r.stats.pathsConfirmed.Add(int64(len(expanded)))

			return ConfirmedPath{
				Path:     text,
				Source:   c.Source,
				Offset:   c.Offset,
				Hash:     HashMixed(expanded[0]),
				Expanded: expanded,
			}, true
		}
	}

	if tail, hasSep := splitTail(text); hasSep && validTail(tail) {
		r.recordUnknown(text)
	}

	return ConfirmedPath{}, false
}

// recordConfirmed inserts one confirmed path into the aggregate, merging
// case variants. The first-seen display form is kept; this is
// deterministic for a fixed input ordering.
func (r *Run) recordConfirmed(path string) {
	key := pathKey(path)

	r.mu.Lock()
	if _, ok := r.known[key]; !ok {
		r.known[key] = path
	}
	r.mu.Unlock()
}

// recordUnknown inserts one unmatched plausible path into the side channel.
func (r *Run) recordUnknown(path string) {
	key := pathKey(path)

	r.mu.Lock()
	_, seen := r.unknown[key]
	if !seen {
		r.unknown[key] = struct{}{}
	}
	r.mu.Unlock()

	if !seen {
		r.stats.pathsUnknown.Add(1)
	}
}

// Finalize returns the run's final output: the sorted, deduplicated list
// of confirmed paths that pass the result rules. It may be called more
// than once; later resolutions extend later results.
func (r *Run) Finalize() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	out := make([]string, 0, len(r.known))
	for _, display := range r.known {
		if r.matcher.Match(display) {
			out = append(out, display)
		}
	}
	r.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Unknown returns the sorted unknown-path side channel.
func (r *Run) Unknown() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	out := make([]string, 0, len(r.unknown))
	for path := range r.unknown {
		out = append(out, path)
	}
	r.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Stats returns a snapshot of the run counters.
func (r *Run) Stats() Stats {
	if r == nil {
		return Stats{}
	}

	return Stats{
		ArchivesParsed:    r.stats.archivesParsed.Load(),
		EntriesIndexed:    r.stats.entriesIndexed.Load(),
		RowsSkipped:       r.stats.rowsSkipped.Load(),
		PayloadsSkipped:   r.stats.payloadsSkipped.Load(),
		FilesFailed:       r.stats.filesFailed.Load(),
		CandidatesScanned: r.stats.candidatesScanned.Load(),
		PathsConfirmed:    r.stats.pathsConfirmed.Load(),
		PathsUnknown:      r.stats.pathsUnknown.Load(),
	}
}
