package mtx

import (
	"fmt"
	goio "io"
)

// WriteCSVSquare writes the matrix as a row×col grid: a Row\Col header
// naming every column label, then one line per row label with the row's
// values to 5 decimal places.
func (m *Matrix) WriteCSVSquare(w goio.Writer) error {
	colIndexes := m.Indexes[0]
	rowIndexes := m.Indexes[1]

	if _, err := fmt.Fprint(w, `Row\Col`); err != nil {
		return err
	}
	for _, col := range colIndexes {
		if _, err := fmt.Fprintf(w, ",%d", col); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for i, row := range rowIndexes {
		values, ok := m.GetRow(i)
		if !ok {
			return fmt.Errorf("row %d out of range: matrix has %d rows", i, m.Rows)
		}

		if _, err := fmt.Fprintf(w, "%d", row); err != nil {
			return err
		}
		for _, v := range values {
			if _, err := fmt.Fprintf(w, ",%.5f", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSVLong writes one Origin,Destination,Value line per cell, row-major:
// all columns of the first row label, then the next.
func (m *Matrix) WriteCSVLong(w goio.Writer) error {
	colIndexes := m.Indexes[0]
	rowIndexes := m.Indexes[1]

	if _, err := fmt.Fprintln(w, "Origin,Destination,Value"); err != nil {
		return err
	}

	for i, row := range rowIndexes {
		values, ok := m.GetRow(i)
		if !ok {
			return fmt.Errorf("row %d out of range: matrix has %d rows", i, m.Rows)
		}

		for j, col := range colIndexes {
			if _, err := fmt.Fprintf(w, "%d,%d,%.5f\n", row, col, values[j]); err != nil {
				return err
			}
		}
	}
	return nil
}
