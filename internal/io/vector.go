package io

import (
	"encoding/binary"
	"fmt"
	goio "io"
	"math"
)

// readFull fills buf from r, mapping a clean EOF to ErrUnexpectedEOF so a
// truncated file always surfaces as a short read.
func readFull(r goio.Reader, buf []byte) error {
	n, err := goio.ReadFull(r, buf)
	if err == goio.EOF {
		err = goio.ErrUnexpectedEOF
	}
	if err != nil {
		return fmt.Errorf("short read: got %d of %d bytes: %w", n, len(buf), err)
	}
	return nil
}

// ReadUint32 reads a single little-endian uint32 from the stream.
func ReadUint32(r goio.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadUint32s reads count little-endian uint32 values as one flat byte
// region. The fill is atomic: on any failure no partial slice is returned.
func ReadUint32s(r goio.Reader, count int) ([]uint32, error) {
	buf := make([]byte, count*4)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out, nil
}

// ReadFloat32s reads count little-endian float32 values as one flat byte
// region. The fill is atomic: on any failure no partial slice is returned.
func ReadFloat32s(r goio.Reader, count int) ([]float32, error) {
	buf := make([]byte, count*4)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}

	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}
