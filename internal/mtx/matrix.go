package mtx

import (
	"fmt"
	goio "io"

	mtxio "github.com/emmetools/mtx2csv/internal/io"
)

// magicNumber opens every EMME matrix file.
const magicNumber = 0xC4D4F1B2

// Header data-type tags. Only TypeFloat32 payloads are decoded; the tag is
// recorded on the Matrix but not validated.
const (
	TypeFloat32 uint32 = 1
	TypeFloat64 uint32 = 2
	TypeInt32   uint32 = 3
	TypeInt64   uint32 = 4
)

// Matrix is one decoded EMME matrix: a dense row-major float32 payload plus
// the zone ID labels for each axis. Indexes[0] labels columns, Indexes[1]
// labels rows. A Matrix is read-only after decode.
type Matrix struct {
	Data    []float32
	Rows    int
	Cols    int
	Indexes [2][]uint32
	Type    uint32
}

// FromEmmeFile decodes an EMME .mtx or .mtx.gz file.
func FromEmmeFile(path string) (*Matrix, error) {
	src, err := mtxio.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return Decode(src)
}

// Decode reads one matrix from a byte source positioned at the header. No
// partial Matrix is ever returned: any validation or read failure aborts.
func Decode(r goio.Reader) (*Matrix, error) {
	magic, err := mtxio.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("reading magic number: %w", err)
	}
	if magic != magicNumber {
		return nil, fmt.Errorf("invalid header: magic number %#x", magic)
	}

	// Format version, reserved for future compatibility.
	if _, err := mtxio.ReadUint32(r); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}

	typ, err := mtxio.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("reading data type: %w", err)
	}

	dims, err := mtxio.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("reading dimension count: %w", err)
	}
	if dims != 2 {
		return nil, fmt.Errorf("invalid dimensions: %d", dims)
	}

	var lengths [2]int
	for i := range lengths {
		n, err := mtxio.ReadUint32(r)
		if err != nil {
			return nil, fmt.Errorf("reading index length %d: %w", i, err)
		}
		lengths[i] = int(n)
	}

	var indexes [2][]uint32
	for i, n := range lengths {
		idx, err := mtxio.ReadUint32s(r, n)
		if err != nil {
			return nil, fmt.Errorf("reading index array %d: %w", i, err)
		}
		indexes[i] = idx
	}

	data, err := mtxio.ReadFloat32s(r, lengths[0]*lengths[1])
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	return &Matrix{
		Data:    data,
		Rows:    lengths[1],
		Cols:    lengths[0],
		Indexes: indexes,
		Type:    typ,
	}, nil
}

// GetRow returns the contiguous values of one row, or ok=false when row is
// out of range.
func (m *Matrix) GetRow(row int) ([]float32, bool) {
	if row < 0 || row >= m.Rows {
		return nil, false
	}
	start := row * m.Cols
	return m.Data[start : start+m.Cols], true
}
