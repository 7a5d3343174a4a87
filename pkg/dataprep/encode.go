package dataprep

import "sort"

// Encoding is the one-hot representation of a categorical column.
type Encoding struct {
	Levels  []string    // distinct observed values, sorted
	Columns []string    // prefix + "_" + level, aligned with Levels
	Data    [][]float64 // one row per input value, 1 marks the level
}

// OneHot one-hot encodes a slice of string categories. Each distinct
// non-empty value gets one indicator column named prefix_value. Empty
// values are missing: their row is all zeros and no indicator column is
// created for them.
func OneHot(values []string, prefix string) Encoding {
	seen := map[string]bool{}
	for _, v := range values {
		if v != "" {
			seen[v] = true
		}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	pos := make(map[string]int, len(levels))
	cols := make([]string, len(levels))
	for i, l := range levels {
		pos[l] = i
		cols[i] = prefix + "_" + l
	}

	out := make([][]float64, len(values))
	for i, v := range values {
		vec := make([]float64, len(levels))
		if j, ok := pos[v]; ok {
			vec[j] = 1
		}
		out[i] = vec
	}
	return Encoding{Levels: levels, Columns: cols, Data: out}
}

// AppendEncoding returns f with the encoded columns appended. The encoding
// must have one row per frame row.
func AppendEncoding(f Frame, e Encoding) (Frame, error) {
	if len(e.Data) != f.Len() {
		return Frame{}, ErrShape
	}
	cols := append(append([]string(nil), f.Columns...), e.Columns...)
	rows := make([][]float64, f.Len())
	for i, r := range f.Rows {
		rows[i] = append(append([]float64(nil), r...), e.Data[i]...)
	}
	return Frame{Columns: cols, Rows: rows}, nil
}
