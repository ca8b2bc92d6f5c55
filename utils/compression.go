package utils

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Extracted document text is cached gzip-compressed; small payloads skip
// the compression overhead entirely.
const compressionThreshold = 500

// CompressText compresses text for cache storage. The returned flag
// reports whether compression was applied.
func CompressText(text string) ([]byte, bool, error) {
	data := []byte(text)
	if len(data) < compressionThreshold {
		return data, false, nil
	}

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil, false, fmt.Errorf("failed to write to gzip writer: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, false, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return buf.Bytes(), true, nil
}

// DecompressText reverses CompressText.
func DecompressText(data []byte, compressed bool) (string, error) {
	if !compressed {
		return string(data), nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	out, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read from gzip reader: %w", err)
	}
	return string(out), nil
}
