package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"watchtime/pkg/eval"
	"watchtime/pkg/profile"
)

// Render writes a human summary of doc to w. When styled is false the
// output carries no colour and uses ASCII borders.
func Render(w io.Writer, doc Document, styled bool) error {
	var b strings.Builder
	title := func(s string) {
		if styled {
			s = Title.Render(s)
		}
		b.WriteString(s + "\n")
	}
	sub := func(s string) {
		if styled {
			s = Subtitle.Render(s)
		}
		b.WriteString(s + "\n")
	}

	title("Watch-time analysis")
	if doc.RunID != "" {
		sub(fmt.Sprintf("run %s  dataset %s  seed %d  test ratio %g", doc.RunID, doc.Dataset, doc.Seed, doc.TestRatio))
	}

	if p := doc.Profile; p != nil {
		b.WriteString("\n")
		title("Dataset")
		sub(p.String())
		b.WriteString(newTable(styled, []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, describeRows(p), -1).String() + "\n")
		if len(p.Categories) > 0 {
			b.WriteString(newTable(styled, []string{"category", "videos", "mean views", "median views"}, categoryRows(p), -1).String() + "\n")
		}
	}

	if f := doc.Features; f != nil {
		b.WriteString("\n")
		title("Features")
		sub(fmt.Sprintf("rows %d  train %d  test %d  features %d  dropped: bad timestamp %d, view<=0 %d, incomplete %d",
			f.Rows, f.Train, f.Test, len(f.Columns), f.TimestampFailed, f.NonPositiveView, f.Incomplete))
		if len(f.Scaled) > 0 {
			rows := make([][]string, 0, len(f.Scaled))
			for _, s := range f.Scaled {
				rows = append(rows, []string{s.Column, num(s.Mean), num(s.Std)})
			}
			b.WriteString(newTable(styled, []string{"scaled column", "train mean", "train std"}, rows, -1).String() + "\n")
		}
	}

	if len(doc.Scores) > 0 {
		b.WriteString("\n")
		title("Models")
		rep := eval.Report{Scores: doc.Scores}
		var rows [][]string
		bestRow := -1
		for _, m := range rep.ByTestMSE() {
			tr, _ := rep.Lookup(m, eval.Train)
			te, _ := rep.Lookup(m, eval.Test)
			if m == doc.Best {
				bestRow = len(rows)
			}
			rows = append(rows, []string{m, num(tr.MAE), num(te.MAE), num(tr.R2), num(te.R2), num(tr.MSE), num(te.MSE)})
		}
		headers := []string{"model", "train MAE", "test MAE", "train R²", "test R²", "train MSE/1e3", "test MSE/1e3"}
		b.WriteString(newTable(styled, headers, rows, bestRow).String() + "\n")
		if doc.Best != "" {
			sub("lowest test MAE: " + doc.Best)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(styled bool, headers []string, rows [][]string, highlight int) *table.Table {
	t := table.New().Headers(headers...).Rows(rows...)
	if !styled {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return lipgloss.NewStyle().Padding(0, 1) })
	}
	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return Header
			case row == highlight:
				return Best
			default:
				return Cell
			}
		})
}

func describeRows(p *profile.Profile) [][]string {
	rows := make([][]string, 0, len(p.Describe))
	for _, d := range p.Describe {
		rows = append(rows, []string{
			d.Column, strconv.Itoa(d.Count), num(d.Mean), num(d.Std),
			num(d.Min), num(d.Q25), num(d.Median), num(d.Q75), num(d.Max),
		})
	}
	return rows
}

func categoryRows(p *profile.Profile) [][]string {
	rows := make([][]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.Count), num(c.Mean), num(c.Median)})
	}
	return rows
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
