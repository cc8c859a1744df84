package compression

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4"
)

// ErrCorrupt is returned when compressed data cannot be decoded.
var ErrCorrupt = errors.New("corrupt compressed data")

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string {
	return "none"
}

// Compress returns a copy of data.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Decompress returns a copy of data.
func (c *NoCompressor) Decompress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Frame markers of LZ4Compressor output.
const (
	frameRaw   byte = 0
	frameBlock byte = 1
)

// minCompressSize is the shortest input handed to the block compressor.
const minCompressSize = 32

// LZ4Compressor stores data as an LZ4 block behind a one byte marker and
// the uncompressed length. Input that does not shrink is stored raw.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string {
	return "lz4"
}

// Compress compresses data using LZ4.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	header := make([]byte, 1, 1+binary.MaxVarintLen64)
	header = binary.AppendUvarint(header, uint64(len(data)))

	if len(data) < minCompressSize {
		header[0] = frameRaw
		return append(header, data...), nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(data) {
		header[0] = frameRaw
		return append(header, data...), nil
	}
	header[0] = frameBlock
	return append(header, compressed[:n]...), nil
}

// Decompress decompresses LZ4 data.
func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, ErrCorrupt
	}
	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, ErrCorrupt
	}
	body := data[1+n:]

	switch data[0] {
	case frameRaw:
		if uint64(len(body)) != size {
			return nil, ErrCorrupt
		}
		return bytes.Clone(body), nil
	case frameBlock:
		out := make([]byte, size)
		got, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if uint64(got) != size {
			return nil, ErrCorrupt
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown frame %d", ErrCorrupt, data[0])
	}
}
