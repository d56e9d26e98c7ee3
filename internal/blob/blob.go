// Package blob compresses binary idea payloads (image captures) before they
// are persisted and restores them on read.
package blob

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstd frame magic, used to recognize compressed payloads so uncompressed
// rows written by older versions still read back correctly.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Compress returns the zstd-compressed form of data. Nil and empty inputs
// pass through unchanged.
func Compress(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress restores a payload written by Compress. Payloads without a zstd
// frame header are returned as-is.
func Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 || !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob: %w", err)
	}
	return out, nil
}
