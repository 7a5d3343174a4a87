// Package profile summarises a loaded dataset before any feature work.
package profile

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"watchtime/pkg/data"
	"watchtime/pkg/dataprep"
	"watchtime/pkg/stats"
)

// Describe holds the summary statistics of one numeric column.
type Describe struct {
	Column string  `yaml:"column"`
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Std    float64 `yaml:"std"`
	Min    float64 `yaml:"min"`
	Q25    float64 `yaml:"q25"`
	Median float64 `yaml:"median"`
	Q75    float64 `yaml:"q75"`
	Max    float64 `yaml:"max"`
}

// CategoryViews summarises the view distribution of one category.
type CategoryViews struct {
	Category string  `yaml:"category"`
	Count    int     `yaml:"count"`
	Mean     float64 `yaml:"mean"`
	Min      float64 `yaml:"min"`
	Q25      float64 `yaml:"q25"`
	Median   float64 `yaml:"median"`
	Q75      float64 `yaml:"q75"`
	Max      float64 `yaml:"max"`
}

// Column is the name and declared type of one source column.
type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Profile is the exploratory summary of a table.
type Profile struct {
	Rows        int             `yaml:"rows"`
	Columns     []Column        `yaml:"columns"`
	Describe    []Describe      `yaml:"describe"`
	Missing     map[string]int  `yaml:"missing"`
	Duplicates  int             `yaml:"duplicates"`
	Correlation []string        `yaml:"correlation_columns"`
	Corr        [][]float64     `yaml:"correlation"`
	HourCounts  [24]int         `yaml:"publish_hour_counts,flow"`
	Categories  []CategoryViews `yaml:"category_views"`
	Skipped     int             `yaml:"skipped_rows"`
	Coerced     int             `yaml:"coerced_cells"`
	Unmapped    int             `yaml:"uncatalogued"`
	views       []float64
	likes       []float64
	byCategory  map[string][]float64
}

// CorrelationColumns are the engagement counters compared pairwise.
var CorrelationColumns = []string{data.ColView, data.ColLike, data.ColComment}

// Uncategorised labels records without a resolved category name.
const Uncategorised = "(none)"

// Build profiles t. It only reads the table.
func Build(t *data.Table) Profile {
	p := Profile{
		Rows:        len(t.Records),
		Missing:     map[string]int{},
		Correlation: CorrelationColumns,
		Skipped:     t.Stats.Skipped,
		Coerced:     t.Stats.Coerced,
		Unmapped:    t.Stats.Uncatalogued,
		byCategory:  map[string][]float64{},
	}
	for i, name := range t.Schema.FeatureNames {
		p.Columns = append(p.Columns, Column{Name: name, Type: t.Schema.Types[i]})
		n := 0
		for _, r := range t.Records {
			if r.IsMissing(name) {
				n++
			}
		}
		p.Missing[name] = n
		if t.Schema.Types[i] == data.TypeFloat {
			p.Describe = append(p.Describe, describe(name, column(t.Records, name)))
		}
	}

	p.Duplicates = countDuplicates(t.Records)
	p.Corr = correlation(t.Records, CorrelationColumns)

	for _, r := range t.Records {
		if ts, ok := dataprep.ParseTimestamp(r.PublishTime); ok {
			p.HourCounts[ts.Hour()]++
		}
		if !math.IsNaN(r.Like) {
			p.likes = append(p.likes, r.Like)
		}
		if math.IsNaN(r.View) {
			continue
		}
		p.views = append(p.views, r.View)
		cat := r.CategoryName
		if cat == "" {
			cat = Uncategorised
		}
		p.byCategory[cat] = append(p.byCategory[cat], r.View)
	}
	for _, cat := range sortedKeys(p.byCategory) {
		v := p.byCategory[cat]
		p.Categories = append(p.Categories, CategoryViews{
			Category: cat,
			Count:    len(v),
			Mean:     stats.Mean(v),
			Min:      stats.Percentile(v, 0),
			Q25:      stats.Percentile(v, 25),
			Median:   stats.Median(v),
			Q75:      stats.Percentile(v, 75),
			Max:      stats.Percentile(v, 100),
		})
	}
	return p
}

// Views returns the non-missing view counts, in record order.
func (p Profile) Views() []float64 { return append([]float64(nil), p.views...) }

// Likes returns the non-missing like counts, in record order.
func (p Profile) Likes() []float64 { return append([]float64(nil), p.likes...) }

// ViewsByCategory returns the view counts of each category.
func (p Profile) ViewsByCategory() map[string][]float64 {
	out := make(map[string][]float64, len(p.byCategory))
	for k, v := range p.byCategory {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

func describe(name string, col []float64) Describe {
	v := stats.Finite(col)
	d := Describe{Column: name, Count: len(v)}
	if len(v) == 0 {
		nan := math.NaN()
		d.Mean, d.Std, d.Min, d.Q25, d.Median, d.Q75, d.Max = nan, nan, nan, nan, nan, nan, nan
		return d
	}
	d.Mean = stats.Mean(v)
	d.Std = stats.SampleStd(v)
	d.Min, d.Max = stats.MinMax(v)
	d.Q25 = stats.Percentile(v, 25)
	d.Median = stats.Median(v)
	d.Q75 = stats.Percentile(v, 75)
	return d
}

func column(recs []data.Record, name string) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i], _ = r.Float(name)
	}
	return out
}

// correlation computes Pearson coefficients over rows complete in both columns.
func correlation(recs []data.Record, cols []string) [][]float64 {
	m := make([][]float64, len(cols))
	for i := range cols {
		m[i] = make([]float64, len(cols))
		for j := range cols {
			var a, b []float64
			for _, r := range recs {
				x, _ := r.Float(cols[i])
				y, _ := r.Float(cols[j])
				if math.IsNaN(x) || math.IsNaN(y) {
					continue
				}
				a = append(a, x)
				b = append(b, y)
			}
			m[i][j] = stats.Correlation(a, b)
		}
	}
	return m
}

// countDuplicates counts records identical to an earlier record.
func countDuplicates(recs []data.Record) int {
	seen := make(map[string]struct{}, len(recs))
	dup := 0
	for _, r := range recs {
		key := recordKey(r)
		if _, ok := seen[key]; ok {
			dup++
			continue
		}
		seen[key] = struct{}{}
	}
	return dup
}

// recordKey encodes every field of r. Text fields are length-prefixed, so
// distinct records never share a key whatever their content.
func recordKey(r data.Record) string {
	var b strings.Builder
	for _, col := range keyColumns {
		if v, ok := r.Float(col); ok {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		} else {
			s, _ := r.Text(col)
			b.WriteString(strconv.Itoa(len(s)))
			b.WriteByte(':')
			b.WriteString(s)
		}
		b.WriteByte(0x1f)
	}
	return b.String()
}

var keyColumns = append(data.Columns(), data.ColCategoryName)

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders a short human summary.
func (p Profile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rows=%d columns=%d duplicates=%d skipped=%d coerced=%d uncatalogued=%d",
		p.Rows, len(p.Columns), p.Duplicates, p.Skipped, p.Coerced, p.Unmapped)
	return b.String()
}
