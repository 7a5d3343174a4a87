package data

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadStats counts the recoveries made while reading a source.
type LoadStats struct {
	Rows         int // records produced
	Skipped      int // rows the CSV reader could not parse at all
	Coerced      int // numeric cells that failed to parse and became missing
	Uncatalogued int // records whose category code is not in the lookup
}

// Table is the typed result of loading a dataset.
type Table struct {
	Schema  Schema
	Records []Record
	Stats   LoadStats
}

// LoadRecords opens path and reads it with ReadRecords.
func LoadRecords(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadRecords reads a CSV source with a header row into typed records.
// Malformed rows (unparseable, or wider than the header) are skipped and
// unparseable numeric cells become missing. A missing header, a missing
// required column or a read error is fatal.
func ReadRecords(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	schema, err := SchemaFromHeader(header)
	if err != nil {
		return nil, err
	}

	// position of each recognised column in the raw row
	cols := make([]string, len(header))
	for i, h := range header {
		if name := normalize(h); schema.Has(name) {
			cols[i] = name
		}
	}

	reader.ReuseRecord = true
	t := &Table{Schema: schema}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) || (err == nil && len(row) > len(cols)) {
			t.Stats.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rec := emptyRecord()
		for i, raw := range row {
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			if rec.set(cols[i], strings.Clone(raw)) {
				t.Stats.Coerced++
			}
		}
		t.Records = append(t.Records, rec)
	}
	t.Stats.Rows = len(t.Records)
	return t, nil
}

// parseFloat converts a cell to a number. Empty and NA-style cells are
// missing; anything else that does not parse is missing and reported as
// coerced.
func parseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "NA", "NaN", "nan", "null", "None":
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), true
	}
	return v, false
}

// CategoryMap maps category codes to human-readable names. It is immutable
// once built.
type CategoryMap struct {
	names map[string]string
}

// NewCategoryMap copies m into a CategoryMap.
func NewCategoryMap(m map[string]string) CategoryMap {
	names := make(map[string]string, len(m))
	for k, v := range m {
		names[k] = v
	}
	return CategoryMap{names: names}
}

// Name resolves a category code.
func (c CategoryMap) Name(id string) (string, bool) {
	n, ok := c.names[id]
	return n, ok
}

// Len returns the number of known categories.
func (c CategoryMap) Len() int { return len(c.names) }

type categoryDoc struct {
	Items []struct {
		ID      json.RawMessage `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// LoadCategories opens path and reads it with ReadCategories.
func LoadCategories(path string) (CategoryMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return CategoryMap{}, fmt.Errorf("open categories: %w", err)
	}
	defer f.Close()
	return ReadCategories(f)
}

// ReadCategories decodes a lookup of the form
// {"items":[{"id":"10","snippet":{"title":"Music"}}]}.
func ReadCategories(r io.Reader) (CategoryMap, error) {
	var doc categoryDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return CategoryMap{}, fmt.Errorf("%w: %v", ErrBadLookup, err)
	}
	names := make(map[string]string, len(doc.Items))
	for i, it := range doc.Items {
		id, err := rawID(it.ID)
		if err != nil {
			return CategoryMap{}, fmt.Errorf("%w: item %d: %v", ErrBadLookup, i, err)
		}
		names[id] = it.Snippet.Title
	}
	return CategoryMap{names: names}, nil
}

// rawID accepts both "10" and 10 as an identifier.
func rawID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id %s is neither string nor number", string(raw))
	}
	return n.String(), nil
}

// Join returns a copy of records with CategoryName resolved from cats.
// Unmapped codes leave the name missing; the count is returned.
func Join(records []Record, cats CategoryMap) ([]Record, int) {
	out := make([]Record, len(records))
	unmapped := 0
	for i, r := range records {
		if name, ok := cats.Name(r.CategoryID); ok {
			r.CategoryName = name
		} else {
			r.CategoryName = ""
			unmapped++
		}
		out[i] = r
	}
	return out, unmapped
}

// JoinTable applies Join to a loaded table and returns a new table whose
// schema includes category_name.
func JoinTable(t *Table, cats CategoryMap) *Table {
	recs, unmapped := Join(t.Records, cats)
	stats := t.Stats
	stats.Uncatalogued = unmapped
	schema := t.Schema
	if !schema.Has(ColCategoryName) {
		schema = schema.WithColumn(ColCategoryName, TypeString)
	}
	return &Table{Schema: schema, Records: recs, Stats: stats}
}
