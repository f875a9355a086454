// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import "errors"

// Sentinel errors for path-recovery operations. Use errors.Is in callers.
var (
	// ErrShortRead means a read would exceed the buffer bounds.
	// Recoverable when iterating table rows, fatal for mandatory headers.
	ErrShortRead = errors.New("read exceeds buffer bounds")
	// ErrInvalidContainer means the container magic does not match.
	ErrInvalidContainer = errors.New("invalid container: bad magic")
	// ErrUnsupportedVersion means the container major version is unknown.
	ErrUnsupportedVersion = errors.New("unsupported container version")
	// ErrUnsupportedFeature means the container uses a feature this reader
	// does not handle (encrypted entry table).
	ErrUnsupportedFeature = errors.New("unsupported container feature")
	// ErrDecodeFailure means an entry payload could not be decoded.
	ErrDecodeFailure = errors.New("entry payload decode failed")
	// ErrNilRun means the run context is nil.
	ErrNilRun = errors.New("run is nil")
	// ErrInvalidFilterPattern means one or more result rules are invalid.
	ErrInvalidFilterPattern = errors.New("invalid result rules")
)
