package mtx

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
	"github.com/kshedden/gonpy"
)

// ToMat64 widens the payload into a gonum dense matrix.
func (m *Matrix) ToMat64() *mat64.Dense {
	data := make([]float64, len(m.Data))
	for i, v := range m.Data {
		data[i] = float64(v)
	}
	return mat64.NewDense(m.Rows, m.Cols, data)
}

// ToNpy writes the matrix payload as a Python numpy npy binary file.
func (m *Matrix) ToNpy(path string) error {
	dense := m.ToMat64()
	rows, cols := dense.Dims()

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating npy file: %w", err)
	}
	w.Shape = []int{rows, cols}
	w.Version = 2
	if err := w.WriteFloat64(dense.RawMatrix().Data); err != nil {
		return fmt.Errorf("writing npy payload: %w", err)
	}
	return nil
}
