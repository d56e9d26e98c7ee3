package blob

import (
	"bytes"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("PNG pixel data "), 512)

	compressed := Compress(payload)
	if bytes.Equal(compressed, payload) {
		t.Fatal("Compress returned input unchanged for compressible data")
	}
	if len(compressed) >= len(payload) {
		t.Errorf("Expected compression to shrink payload, %d >= %d", len(compressed), len(payload))
	}

	restored, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if !bytes.Equal(restored, payload) {
		t.Error("Round trip did not restore original payload")
	}
}

func TestDecompressPassesThroughRawPayloads(t *testing.T) {
	raw := []byte("legacy uncompressed blob")

	out, err := Decompress(raw)
	if err != nil {
		t.Fatalf("Decompress failed on raw payload: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Error("Raw payload should pass through unchanged")
	}
}

func TestEmptyPayloads(t *testing.T) {
	if got := Compress(nil); got != nil {
		t.Error("Compress(nil) should return nil")
	}

	out, err := Decompress(nil)
	if err != nil {
		t.Fatalf("Decompress(nil) failed: %v", err)
	}
	if out != nil {
		t.Error("Decompress(nil) should return nil")
	}
}
