package dataprep

import (
	"fmt"
	"math"
)

// Frame is an immutable table of named numeric columns. Missing values are
// math.NaN(). Every method returns a new Frame; row slices are never shared
// with the receiver.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// NewFrame copies cols and rows into a Frame. Every row must match the
// column count.
func NewFrame(cols []string, rows [][]float64) (Frame, error) {
	out := Frame{Columns: append([]string(nil), cols...), Rows: make([][]float64, len(rows))}
	for i, r := range rows {
		if len(r) != len(cols) {
			return Frame{}, fmt.Errorf("%w: row %d has %d values, want %d", ErrShape, i, len(r), len(cols))
		}
		out.Rows[i] = append([]float64(nil), r...)
	}
	return out, nil
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.Rows) }

// Width returns the number of columns.
func (f Frame) Width() int { return len(f.Columns) }

// Index returns the position of a column or -1.
func (f Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the column exists.
func (f Frame) Has(name string) bool { return f.Index(name) >= 0 }

// Column returns a copy of the named column.
func (f Frame) Column(name string) ([]float64, bool) {
	j := f.Index(name)
	if j < 0 {
		return nil, false
	}
	out := make([]float64, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r[j]
	}
	return out, true
}

// Drop removes the named columns. Names that are not present are ignored.
func (f Frame) Drop(names ...string) Frame {
	deny := make(map[string]bool, len(names))
	for _, n := range names {
		deny[n] = true
	}
	var keep []int
	out := Frame{}
	for j, c := range f.Columns {
		if !deny[c] {
			keep = append(keep, j)
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([][]float64, len(f.Rows))
	for i, r := range f.Rows {
		row := make([]float64, len(keep))
		for k, j := range keep {
			row[k] = r[j]
		}
		out.Rows[i] = row
	}
	return out
}

// DropNA removes every row holding a missing value and returns how many
// rows were removed.
func (f Frame) DropNA() (Frame, int) {
	out := Frame{Columns: append([]string(nil), f.Columns...)}
	dropped := 0
	for _, r := range f.Rows {
		if hasNaN(r) {
			dropped++
			continue
		}
		out.Rows = append(out.Rows, append([]float64(nil), r...))
	}
	return out, dropped
}

// Take returns the rows at the given positions, in that order.
func (f Frame) Take(idx []int) Frame {
	out := Frame{Columns: append([]string(nil), f.Columns...), Rows: make([][]float64, len(idx))}
	for k, i := range idx {
		out.Rows[k] = append([]float64(nil), f.Rows[i]...)
	}
	return out
}

// MissingCount returns the number of NaN cells.
func (f Frame) MissingCount() int {
	n := 0
	for _, r := range f.Rows {
		for _, v := range r {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

func hasNaN(r []float64) bool {
	for _, v := range r {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
