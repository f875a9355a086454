// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

/*
Package pakpath recovers internal file-path strings from hashed-path game
archive containers and raw process memory dumps. Containers store no
plaintext directory listing, only a 64-bit hash per entry; this package
rebuilds the listing by extracting path-like byte runs from unstructured
data, hashing each candidate the way the engine does, and keeping the
candidates whose hash appears in an ingested container table.

A recovery run is driven by a Run context that owns the accumulated hash
set; nothing is process-global, so several runs can coexist in one
process.

# Basic flow

Ingest containers, scan buffers, finalize:

	run, err := pakpath.NewRun(pakpath.RunOptions{})
	if err != nil {
	    return err
	}
	if _, err := run.IngestArchive("data.pak", pakBytes); err != nil {
	    return err // bad container, skip this file
	}
	for c := range pakpath.ScanBuffer(dumpBytes, pakpath.ScanBoth, pakpath.ScanOptions{}) {
	    run.Resolve(c)
	}
	for _, path := range run.Finalize() {
	    fmt.Println(path)
	}

# Orchestrated search

Search ingests all archives in parallel, then scans dumps and archive
entry payloads against the completed hash set. One malformed input never
aborts the run; it is reported in SearchResult.Errors:

	result, err := run.Search(ctx,
	    []pakpath.Buffer{{Name: "data.pak", Data: pakBytes}},
	    []pakpath.Buffer{{Name: "game.dmp", Data: dumpBytes}},
	    pakpath.SearchOptions{Workers: 4},
	)
	if err != nil {
	    return err // cancelled
	}
	_ = result.Paths
	_ = result.Unknown

# Oversized dumps

Dumps too large to hold in memory are scanned in overlapping windows:

	for c, err := range pakpath.ScanReader(f, pakpath.ScanWide, pakpath.ScanOptions{}) {
	    if err != nil {
	        return err
	    }
	    run.Resolve(c)
	}

# Result rules

Confirmed output can be narrowed with path rules
(github.com/woozymasta/pathrules):

	run, err := pakpath.NewRun(pakpath.RunOptions{
	    Include: []pathrules.Rule{
	        {Action: pathrules.ActionInclude, Pattern: "natives/stm/gamedesign/**"},
	    },
	})

Recovered relative paths are expanded to full container forms (platform
prefix, format-version suffix, language and streaming variants) and each
form is itself hash-confirmed before it appears in the output. Candidates
that look like paths but match nothing are kept on a separate unknown
list for manual review; they never pollute the confirmed output.
*/
package pakpath
