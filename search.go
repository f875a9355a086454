// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Search runs the full recovery pipeline over in-memory inputs: every
// archive is ingested first (in parallel), then — only after the hash set
// is complete — dump buffers and archive entry payloads are scanned and
// resolved in parallel. Per-file failures become SearchResult.Errors and
// never abort the run; the only fatal condition is context cancellation,
// checked at file-task boundaries.
func (r *Run) Search(ctx context.Context, archives, dumps []Buffer, opts SearchOptions) (*SearchResult, error) {
	if r == nil {
		return nil, ErrNilRun
	}
	opts.applyDefaults()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		errMu      sync.Mutex
		fileErrors []FileError
	)
	recordFailure := func(name string, err error) {
		r.stats.filesFailed.Add(1)
		r.log.Warn("input skipped", "file", name, "error", err)

		errMu.Lock()
		fileErrors = append(fileErrors, FileError{Name: name, Err: err})
		errMu.Unlock()
	}

	// Phase 1: ingest every archive. The barrier before phase 2 makes the
	// hash set complete before any resolution starts.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, archive := range archives {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if _, err := r.IngestArchive(archive.Name, archive.Data); err != nil {
				recordFailure(archive.Name, err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if r.HashCount() == 0 {
		r.log.Warn("no valid archives parsed; nothing to resolve against",
			"archives", len(archives))
	}

	// Phase 2: scan dumps and archive entry payloads against the frozen set.
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, dump := range dumps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			found := r.ScanAndResolve(dump.Name, dump.Data, opts.DumpScanMode)
			r.log.Info("dump scanned", "dump", dump.Name, "confirmed", found)
			return nil
		})
	}

	for _, archive := range r.Archives() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			r.scanArchiveEntries(archive, opts.EntryScanMode)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SearchResult{
		Paths:   r.Finalize(),
		Unknown: r.Unknown(),
		Errors:  fileErrors,
		Stats:   r.Stats(),
	}

	r.log.Info("search complete",
		"paths", len(result.Paths),
		"unknown", len(result.Unknown),
		"failed_files", len(result.Errors))

	return result, nil
}

// ScanAndResolve scans one buffer for candidates and resolves each one,
// returning the number of confirmed hits.
func (r *Run) ScanAndResolve(name string, data []byte, mode ScanMode) int {
	if r == nil {
		return 0
	}

	scanOpts := r.opts.Scan
	scanOpts.Source = name

	found := 0
	for c := range ScanBuffer(data, mode, scanOpts) {
		if _, ok := r.Resolve(c); ok {
			found++
		}
	}

	return found
}

// scanArchiveEntries decodes and scans every entry payload of one
// ingested archive. Undecodable payloads lose only their text
// contribution; their hashes stay in the set from ingest.
func (r *Run) scanArchiveEntries(a *Archive, mode ScanMode) {
	for i := range a.Entries {
		entry := a.Entries[i]

		payload, err := a.DecodeEntry(entry)
		if err != nil {
			r.stats.payloadsSkipped.Add(1)
			r.log.Debug("payload decode failed",
				"archive", a.Name, "hash", entry.Hash, "method", entry.Method().String())
			continue
		}

		if !r.opts.KeepBinaryPayloads && skipPayloadMagic(payload) {
			r.stats.payloadsSkipped.Add(1)
			continue
		}

		r.ScanAndResolve(a.Name, payload, mode)
	}
}
