package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"watchtime/pkg/eval"
	"watchtime/pkg/profile"
	"watchtime/pkg/stats"
)

// Chart file names written by RenderCharts.
const (
	ChartViews       = "views_hist.png"
	ChartLikes       = "likes_hist.png"
	ChartPublishHour = "publish_hour.png"
	ChartCorrelation = "correlation.png"
	ChartCategories  = "views_by_category.png"
	ChartMSE         = "mse.png"
)

// Prediction pairs a model's test predictions with the actual target.
type Prediction struct {
	Model     string
	Actual    []float64
	Predicted []float64
}

// ChartData is the input of RenderCharts. Nil or empty parts are skipped.
type ChartData struct {
	Profile     *profile.Profile
	Scores      []eval.Score
	Predictions []Prediction
}

var (
	trainColor = color.RGBA{R: 96, G: 165, B: 250, A: 255}
	likeColor  = color.RGBA{R: 74, G: 222, B: 128, A: 255}
	testColor  = color.RGBA{R: 248, G: 113, B: 113, A: 255}
)

// RenderCharts writes PNG charts into dir and returns the written paths.
func RenderCharts(dir string, d ChartData) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	var written []string
	save := func(p *plot.Plot, name string) error {
		path := filepath.Join(dir, name)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if pr := d.Profile; pr != nil {
		if views := pr.Views(); len(views) > 0 {
			p, err := viewsHistogram(views)
			if err != nil {
				return written, err
			}
			if err := save(p, ChartViews); err != nil {
				return written, err
			}
		}
		if p, ok, err := likesHistogram(pr.Likes()); err != nil {
			return written, err
		} else if ok {
			if err := save(p, ChartLikes); err != nil {
				return written, err
			}
		}
		p, err := hourBars(pr.HourCounts)
		if err != nil {
			return written, err
		}
		if err := save(p, ChartPublishHour); err != nil {
			return written, err
		}
		if len(pr.Corr) > 0 {
			if err := save(correlationHeatmap(pr.Correlation, pr.Corr), ChartCorrelation); err != nil {
				return written, err
			}
		}
		if len(pr.Categories) > 0 {
			p, err := categoryBoxes(pr.ViewsByCategory())
			if err != nil {
				return written, err
			}
			if err := save(p, ChartCategories); err != nil {
				return written, err
			}
		}
	}

	if len(d.Scores) > 0 {
		p, err := mseBars(eval.Report{Scores: d.Scores})
		if err != nil {
			return written, err
		}
		if err := save(p, ChartMSE); err != nil {
			return written, err
		}
	}

	for _, pred := range d.Predictions {
		p, err := predictionScatter(pred)
		if err != nil {
			return written, err
		}
		if err := save(p, "prediction_"+slug(pred.Model)+".png"); err != nil {
			return written, err
		}
	}
	return written, nil
}

// viewsHistogram plots views clipped at the 99th percentile.
func viewsHistogram(views []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Distribution of Views"
	p.X.Label.Text = "views (clipped at p99)"
	p.Y.Label.Text = "videos"

	h, err := plotter.NewHist(plotter.Values(stats.ClipPercentiles(views, 0, 99)), 30)
	if err != nil {
		return nil, fmt.Errorf("views histogram: %w", err)
	}
	h.FillColor = trainColor
	p.Add(h)
	return p, nil
}

// likesHistogram bins log10 of the positive like counts. ok is false when
// no count is positive.
func likesHistogram(likes []float64) (p *plot.Plot, ok bool, err error) {
	logs := make(plotter.Values, 0, len(likes))
	for _, v := range likes {
		if v > 0 {
			logs = append(logs, math.Log10(v))
		}
	}
	if len(logs) == 0 {
		return nil, false, nil
	}

	p = plot.New()
	p.Title.Text = "Distribution of Likes"
	p.X.Label.Text = "likes (log scale)"
	p.Y.Label.Text = "videos"
	p.X.Tick.Marker = powerTicks{}

	h, err := plotter.NewHist(logs, 50)
	if err != nil {
		return nil, false, fmt.Errorf("likes histogram: %w", err)
	}
	h.FillColor = likeColor
	p.Add(h)
	return p, true, nil
}

// powerTicks labels a log10 axis with powers of ten.
type powerTicks struct{}

func (powerTicks) Ticks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for e := math.Ceil(lo); e <= math.Floor(hi); e++ {
		ticks = append(ticks, plot.Tick{Value: e, Label: "1e" + strconv.Itoa(int(e))})
	}
	if len(ticks) < 2 {
		ticks = ticks[:0]
		for _, v := range []float64{lo, hi} {
			ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(math.Pow(10, v), 'g', 3, 64)})
		}
	}
	return ticks
}

func hourBars(counts [24]int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Videos by Publish Hour"
	p.Y.Label.Text = "videos"

	vals := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for h, c := range counts {
		vals[h] = float64(c)
		names[h] = strconv.Itoa(h)
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(10))
	if err != nil {
		return nil, fmt.Errorf("hour bars: %w", err)
	}
	bars.Color = trainColor
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// grid adapts a square correlation matrix to plotter.GridXYZ.
type grid struct{ m [][]float64 }

func (g grid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }
func (g grid) Z(c, r int) float64 { return g.m[r][c] }

func correlationHeatmap(names []string, corr [][]float64) *plot.Plot {
	m := make([][]float64, len(corr))
	for i, row := range corr {
		m[i] = make([]float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				m[i][j] = v
			}
		}
	}

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	h := plotter.NewHeatMap(grid{m: m}, palette.Heat(16, 1))
	h.Min, h.Max = -1, 1
	p.Add(h)
	p.NominalX(names...)
	p.NominalY(names...)
	return p
}

func categoryBoxes(byCat map[string][]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Views per Category"
	p.Y.Label.Text = "views"

	names := make([]string, 0, len(byCat))
	for k := range byCat {
		names = append(names, k)
	}
	sort.Strings(names)
	for i, name := range names {
		box, err := plotter.NewBoxPlot(vg.Points(16), float64(i), plotter.Values(byCat[name]))
		if err != nil {
			return nil, fmt.Errorf("box plot %s: %w", name, err)
		}
		p.Add(box)
	}
	p.NominalX(names...)
	return p, nil
}

// mseBars draws train and test MSE/1000 side by side for each model.
func mseBars(rep eval.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "MSE by Model (÷1000)"
	p.Y.Label.Text = "MSE / 1000"

	models := rep.ByTestMSE()
	width := vg.Points(20)
	for k, part := range []string{eval.Train, eval.Test} {
		vals := make(plotter.Values, len(models))
		for i, m := range models {
			s, _ := rep.Lookup(m, part)
			vals[i] = s.MSE
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, fmt.Errorf("mse bars: %w", err)
		}
		bars.Color = trainColor
		bars.Offset = -width / 2
		if k == 1 {
			bars.Color = testColor
			bars.Offset = width / 2
		}
		p.Add(bars)
		p.Legend.Add(part, bars)
	}
	p.Legend.Top = true
	p.NominalX(models...)
	return p, nil
}

// predictionScatter plots predicted against actual with the identity line.
func predictionScatter(pred Prediction) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pred.Model + ": Predicted vs Actual"
	p.X.Label.Text = "actual"
	p.Y.Label.Text = "predicted"

	n := min(len(pred.Actual), len(pred.Predicted))
	pts := make(plotter.XYs, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		pts[i] = plotter.XY{X: pred.Actual[i], Y: pred.Predicted[i]}
		lo = math.Min(lo, math.Min(pts[i].X, pts[i].Y))
		hi = math.Max(hi, math.Max(pts[i].X, pts[i].Y))
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("prediction scatter: %w", err)
	}
	s.Color = trainColor
	p.Add(s)

	if n > 0 {
		l, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
		if err != nil {
			return nil, fmt.Errorf("identity line: %w", err)
		}
		l.Color = testColor
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
	}
	return p, nil
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		default:
			if len(out) > 0 && out[len(out)-1] != '_' {
				out = append(out, '_')
			}
		}
	}
	return string(out)
}
