// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/woozymasta/lzss"
)

// fixturePayload returns compressible pseudo-random test bytes.
func fixturePayload(t *testing.T, size int) []byte {
	t.Helper()

	words := []string{"natives/", "stm/", "gamedesign/", "payload", "chunk"}
	rng := rand.New(rand.NewSource(42))

	var buf bytes.Buffer
	for buf.Len() < size {
		buf.WriteString(words[rng.Intn(len(words))])
	}

	return buf.Bytes()[:size]
}

// deflateBytes compresses data as a raw DEFLATE stream.
func deflateBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("flate write: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("flate close: %v", err)
	}

	return buf.Bytes()
}

// zstdBytes compresses data as a zstandard frame.
func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter: %v", err)
	}
	defer func() { _ = enc.Close() }()

	return enc.EncodeAll(data, nil)
}

// lzssBytes compresses data as an LZSS stream.
func lzssBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	out, err := lzss.Compress(data, lzss.DefaultCompressOptions())
	if err != nil {
		t.Fatalf("lzss.Compress: %v", err)
	}

	return out
}

func TestDecodePayloadRoundTrips(t *testing.T) {
	t.Parallel()

	plain := fixturePayload(t, 8192)

	cases := []struct {
		name   string
		method CompressionMethod
		stored []byte
	}{
		{name: "none", method: MethodNone, stored: plain},
		{name: "deflate", method: MethodDeflate, stored: deflateBytes(t, plain)},
		{name: "zstd", method: MethodZstd, stored: zstdBytes(t, plain)},
		{name: "lzss", method: MethodLZSS, stored: lzssBytes(t, plain)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := decodePayload(tc.method, tc.stored, int64(len(plain)))
			if err != nil {
				t.Fatalf("decodePayload: %v", err)
			}
			if !bytes.Equal(out, plain) {
				t.Fatalf("decoded %d bytes differ from input", len(out))
			}
		})
	}
}

func TestDecodePayloadUnknownMethod(t *testing.T) {
	t.Parallel()

	if _, err := decodePayload(CompressionMethod(9), []byte("data"), 4); !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("err = %v, want ErrDecodeFailure", err)
	}
}

func TestDecodePayloadGarbageStream(t *testing.T) {
	t.Parallel()

	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02, 0x03}

	for _, method := range []CompressionMethod{MethodDeflate, MethodZstd} {
		if _, err := decodePayload(method, garbage, 64); !errors.Is(err, ErrDecodeFailure) {
			t.Fatalf("%s: err = %v, want ErrDecodeFailure", method, err)
		}
	}
}

func TestDecodePayloadSizeMismatch(t *testing.T) {
	t.Parallel()

	plain := fixturePayload(t, 1024)
	stored := zstdBytes(t, plain)

	// row claims twice the real decoded size
	if _, err := decodePayload(MethodZstd, stored, int64(len(plain)*2)); !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("err = %v, want ErrDecodeFailure", err)
	}
}

func TestDecodePayloadClaimedSizeOutOfRange(t *testing.T) {
	t.Parallel()

	if _, err := decodePayload(MethodNone, nil, -1); !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("negative size: err = %v, want ErrDecodeFailure", err)
	}
	if _, err := decodePayload(MethodZstd, nil, maxDecodedPayload+1); !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("oversized claim: err = %v, want ErrDecodeFailure", err)
	}
}

func TestCompressionMethodString(t *testing.T) {
	t.Parallel()

	cases := map[CompressionMethod]string{
		MethodNone:           "none",
		MethodDeflate:        "deflate",
		MethodZstd:           "zstd",
		MethodLZSS:           "lzss",
		CompressionMethod(7): "unknown(7)",
	}

	for method, want := range cases {
		if got := method.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", uint8(method), got, want)
		}
	}
}
