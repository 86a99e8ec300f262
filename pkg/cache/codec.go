// Package cache persists classification results keyed by source digest,
// so unchanged files are never re-parsed. Region sequences are stored as
// delta-encoded uint32 streams compressed with LZ4: region offsets are
// sorted, so deltas are small and repetitive.
package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/codelayers/strata/pkg/layer"
)

// uint32ByteSize is the number of bytes in a uint32.
const uint32ByteSize = 4

// fieldsPerRegion is the number of uint32 values one region occupies in
// the encoded stream: start, end, layer.
const fieldsPerRegion = 3

// magic identifies the cache entry format.
var magic = []byte("SLR1")

// headerSize is magic, the uint32 region count, and the compression flag.
const headerSize = 4 + uint32ByteSize + 1

// Compression flag values.
const (
	blockRaw = 0
	blockLZ4 = 1
)

// ErrCorruptEntry indicates an entry that cannot be decoded.
var ErrCorruptEntry = errors.New("cache: corrupt entry")

// EncodeRegions serializes a region sequence. Layout: magic, region
// count, compression flag, then an LZ4 block (or the raw stream when the
// block would not shrink) holding delta-encoded starts, delta-encoded
// ends, and raw layer values.
func EncodeRegions(regions []layer.Region) ([]byte, error) {
	header := make([]byte, headerSize)
	copy(header, magic)
	binary.LittleEndian.PutUint32(header[4:], uint32(len(regions)))
	header[8] = blockLZ4

	if len(regions) == 0 {
		return header, nil
	}

	stream := make([]uint32, 0, len(regions)*fieldsPerRegion)

	for _, r := range regions {
		stream = append(stream, uint32(r.Start))
	}

	for _, r := range regions {
		stream = append(stream, uint32(r.End))
	}

	for _, r := range regions {
		stream = append(stream, uint32(r.Layer))
	}

	deltaEncode(stream[:len(regions)])
	deltaEncode(stream[len(regions) : 2*len(regions)])

	raw := new(bytes.Buffer)
	if err := binary.Write(raw, binary.LittleEndian, stream); err != nil {
		return nil, fmt.Errorf("cache: encode stream: %w", err)
	}

	compressed := make([]byte, lz4.CompressBlockBound(raw.Len()))

	written, err := lz4.CompressBlock(raw.Bytes(), compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: compress: %w", err)
	}

	if written == 0 {
		// Incompressible block: store raw.
		header[8] = blockRaw
		written = copy(compressed, raw.Bytes())
	}

	return append(header, compressed[:written]...), nil
}

// DecodeRegions deserializes an entry produced by EncodeRegions.
func DecodeRegions(data []byte) ([]layer.Region, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic) {
		return nil, ErrCorruptEntry
	}

	count := int(binary.LittleEndian.Uint32(data[4:8]))
	if count == 0 {
		return nil, nil
	}

	stream := make([]uint32, count*fieldsPerRegion)
	raw := make([]byte, len(stream)*uint32ByteSize)

	switch data[8] {
	case blockLZ4:
		if _, err := lz4.UncompressBlock(data[headerSize:], raw); err != nil {
			return nil, ErrCorruptEntry
		}
	case blockRaw:
		if len(data)-headerSize != len(raw) {
			return nil, ErrCorruptEntry
		}

		copy(raw, data[headerSize:])
	default:
		return nil, ErrCorruptEntry
	}

	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, stream); err != nil {
		return nil, ErrCorruptEntry
	}

	deltaDecode(stream[:count])
	deltaDecode(stream[count : 2*count])

	regions := make([]layer.Region, count)

	for i := range count {
		regions[i] = layer.Region{
			Start: int(stream[i]),
			End:   int(stream[count+i]),
			Layer: layer.Layer(stream[2*count+i]),
		}
	}

	return regions, nil
}

// deltaEncode replaces each element with the difference from its
// predecessor, in place. The first element is left unchanged.
func deltaEncode(data []uint32) {
	for i := len(data) - 1; i > 0; i-- {
		data[i] -= data[i-1]
	}
}

// deltaDecode performs a prefix-sum restoring values encoded by
// deltaEncode, in place.
func deltaDecode(data []uint32) {
	for i := 1; i < len(data); i++ {
		data[i] += data[i-1]
	}
}
