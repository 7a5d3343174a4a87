package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/data"
	"watchtime/pkg/eval"
	"watchtime/pkg/profile"
	"watchtime/pkg/report"
)

const csvSource = `video_id,publish_time,category_id,view,like,comment
a,2021-01-18T09:00:00Z,10,100,10,1
b,2021-01-18T10:00:00Z,10,250,20,3
c,2021-01-19T21:00:00Z,20,300,25,2
d,2021-01-20T21:00:00Z,20,900,40,9
`

func sampleDocument() report.Document {
	tbl, err := data.ReadRecords(strings.NewReader(csvSource))
	if err != nil {
		panic(err)
	}
	tbl = data.JoinTable(tbl, data.NewCategoryMap(map[string]string{"10": "Music", "20": "Gaming"}))
	p := profile.Build(tbl)
	return report.Document{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Dataset:     "videos.csv",
		Seed:        42,
		TestRatio:   0.2,
		Profile:     &p,
		Features: &report.Features{
			Rows: 4, Train: 3, Test: 1,
			Columns: []string{"view", "publish_hour", "cat_Music"},
			Scaled:  []report.Scaled{{Column: "view", Mean: 216.6667, Std: 83.3}},
		},
		Scores: []eval.Score{
			{Model: "Linear Regression", Partition: eval.Train, MAE: 1, MSE: 2, R2: 0.5},
			{Model: "Linear Regression", Partition: eval.Test, MAE: 3, MSE: 4, R2: 0.4},
			{Model: "Random Forest", Partition: eval.Train, MAE: 0.5, MSE: 1, R2: 0.9},
			{Model: "Random Forest", Partition: eval.Test, MAE: 2, MSE: 8, R2: 0.2},
		},
		Best: "Random Forest",
	}
}

func TestRender(t *testing.T) {
	convey.Convey("Given a complete document", t, func() {
		doc := sampleDocument()

		convey.Convey("When rendered plain", func() {
			var buf bytes.Buffer
			convey.So(report.Render(&buf, doc, false), convey.ShouldBeNil)
			out := buf.String()

			convey.Convey("Then every section is present without escape codes", func() {
				convey.So(out, convey.ShouldContainSubstring, "Watch-time analysis")
				convey.So(out, convey.ShouldContainSubstring, "Dataset")
				convey.So(out, convey.ShouldContainSubstring, "Gaming")
				convey.So(out, convey.ShouldContainSubstring, "train 3")
				convey.So(out, convey.ShouldContainSubstring, "lowest test MAE: Random Forest")
				convey.So(out, convey.ShouldNotContainSubstring, "\x1b[")
			})

			convey.Convey("Then models are ordered by test MSE, largest first", func() {
				convey.So(strings.Index(out, "Random Forest"), convey.ShouldBeLessThan, strings.Index(out, "Linear Regression"))
			})
		})

		convey.Convey("When only the profile is set", func() {
			var buf bytes.Buffer
			convey.So(report.Render(&buf, report.Document{Profile: doc.Profile}, false), convey.ShouldBeNil)
			convey.So(buf.String(), convey.ShouldNotContainSubstring, "Models")
		})

		convey.Convey("Then a buffer is never styled", func() {
			convey.So(report.Styled(&bytes.Buffer{}), convey.ShouldBeFalse)
		})
	})
}

func TestWriteYAML(t *testing.T) {
	convey.Convey("Given a document written to disk", t, func() {
		doc := sampleDocument()
		path := filepath.Join(t.TempDir(), "out", "report.yaml")
		convey.So(report.WriteYAML(path, doc), convey.ShouldBeNil)

		convey.Convey("Then it reads back with the same summary", func() {
			back, err := report.ReadYAML(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(back.RunID, convey.ShouldEqual, "run-1")
			convey.So(back.Best, convey.ShouldEqual, "Random Forest")
			convey.So(back.Scores, convey.ShouldResemble, doc.Scores)
			convey.So(back.Features.Columns, convey.ShouldResemble, doc.Features.Columns)
			convey.So(back.Profile.Rows, convey.ShouldEqual, 4)
			convey.So(back.Profile.HourCounts[21], convey.ShouldEqual, 2)
		})

		convey.Convey("Then the file uses the documented keys", func() {
			raw, _ := os.ReadFile(path)
			convey.So(string(raw), convey.ShouldContainSubstring, "mse_div_1000:")
			convey.So(string(raw), convey.ShouldContainSubstring, "best_model: Random Forest")
		})
	})
}

func TestRenderCharts(t *testing.T) {
	convey.Convey("Given profile, scores and predictions", t, func() {
		doc := sampleDocument()
		dir := t.TempDir()
		paths, err := report.RenderCharts(dir, report.ChartData{
			Profile: doc.Profile,
			Scores:  doc.Scores,
			Predictions: []report.Prediction{
				{Model: "Random Forest", Actual: []float64{1, 2, 3}, Predicted: []float64{1.1, 1.9, 3.2}},
			},
		})

		convey.Convey("Then one PNG per chart is written", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(paths, convey.ShouldHaveLength, 7)
			for _, name := range []string{
				report.ChartViews, report.ChartLikes, report.ChartPublishHour, report.ChartCorrelation,
				report.ChartCategories, report.ChartMSE, "prediction_random_forest.png",
			} {
				info, statErr := os.Stat(filepath.Join(dir, name))
				convey.So(statErr, convey.ShouldBeNil)
				convey.So(info.Size(), convey.ShouldBeGreaterThan, 0)
			}
		})
	})

	convey.Convey("Given a profile where no video has likes", t, func() {
		tbl, err := data.ReadRecords(strings.NewReader("video_id,publish_time,category_id,view,like,comment\na,2021-01-18T09:00:00Z,10,100,0,1\nb,2021-01-18T10:00:00Z,10,300,0,2\n"))
		convey.So(err, convey.ShouldBeNil)
		p := profile.Build(tbl)
		dir := t.TempDir()
		_, err = report.RenderCharts(dir, report.ChartData{Profile: &p})

		convey.Convey("Then the likes chart is skipped", func() {
			convey.So(err, convey.ShouldBeNil)
			_, statErr := os.Stat(filepath.Join(dir, report.ChartLikes))
			convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given nothing to chart", t, func() {
		paths, err := report.RenderCharts(t.TempDir(), report.ChartData{})
		convey.So(err, convey.ShouldBeNil)
		convey.So(paths, convey.ShouldBeEmpty)
	})
}
