// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/woozymasta/lzss"
)

// maxDecodedPayload caps a single decoded entry payload. Rows claiming more
// are treated as malformed rather than allocated.
const maxDecodedPayload = 1 << 31 // 2 GiB

var (
	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

// sharedZstdDecoder returns the process-wide zstd decoder.
// DecodeAll on a shared decoder is safe for concurrent use.
func sharedZstdDecoder() (*zstd.Decoder, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	})

	return zstdDecoder, zstdDecoderErr
}

// decodePayload decodes one entry payload according to its method tag.
// uncompressedSize is the size the table row claims; the decoded result
// must match it exactly for compressed methods.
func decodePayload(method CompressionMethod, data []byte, uncompressedSize int64) ([]byte, error) {
	if uncompressedSize < 0 || uncompressedSize > maxDecodedPayload {
		return nil, fmt.Errorf("%w: claimed size %d out of range", ErrDecodeFailure, uncompressedSize)
	}

	switch method {
	case MethodNone:
		return data, nil

	case MethodDeflate:
		fr := flate.NewReader(bytes.NewReader(data))
		defer func() { _ = fr.Close() }()

		out := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(fr, out); err != nil {
			return nil, fmt.Errorf("%w: deflate: %w", ErrDecodeFailure, err)
		}

		return out, nil

	case MethodZstd:
		dec, err := sharedZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("%w: zstd init: %w", ErrDecodeFailure, err)
		}

		out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrDecodeFailure, err)
		}
		if int64(len(out)) != uncompressedSize {
			return nil, fmt.Errorf("%w: zstd: decoded %d bytes, row claims %d", ErrDecodeFailure, len(out), uncompressedSize)
		}

		return out, nil

	case MethodLZSS:
		var buf bytes.Buffer
		buf.Grow(int(uncompressedSize))
		if _, err := lzss.DecompressToWriter(&buf, bytes.NewReader(data), int(uncompressedSize), nil); err != nil {
			return nil, fmt.Errorf("%w: lzss: %w", ErrDecodeFailure, err)
		}

		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: unknown method tag %d", ErrDecodeFailure, uint8(method))
	}
}
