package data_test

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/data"
)

const sampleCSV = `video_id,publish_time,channel_id,title,description,thumbnail_url,thumbnail_width,thumbnail_height,channel_name,tags,category_id,view,like,dislike,favorite,comment,trending_time
a1,2021-01-18T10:15:00Z,c1,First,,http://x/1.jpg,120,90,Chan,,024,1000,50,2,0,5,2021-01-19T00:00:00Z
a2,2021-01-19T23:59:59Z,c2,Second,desc,http://x/2.jpg,120,90,Chan2,tag|x,10,abc,10,0,0,1,2021-01-20T00:00:00Z
a3,not-a-date,c3,Third,desc,http://x/3.jpg,120,90,Chan3,t,99,300,,0,0,3,2021-01-20T00:00:00Z
`

const sampleLookup = `{"kind":"x","items":[
  {"id":"024","snippet":{"title":"Entertainment"}},
  {"id":10,"snippet":{"title":"Music"}}
]}`

func TestReadRecords(t *testing.T) {
	convey.Convey("Given a CSV source with a full header", t, func() {
		tbl, err := data.ReadRecords(strings.NewReader(sampleCSV))

		convey.Convey("Then every row is loaded", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(tbl.Records, convey.ShouldHaveLength, 3)
			convey.So(tbl.Stats.Rows, convey.ShouldEqual, 3)
		})

		convey.Convey("Then category_id keeps its leading zero", func() {
			convey.So(tbl.Records[0].CategoryID, convey.ShouldEqual, "024")
		})

		convey.Convey("Then an unparseable number becomes missing without aborting", func() {
			convey.So(math.IsNaN(tbl.Records[1].View), convey.ShouldBeTrue)
			convey.So(tbl.Stats.Coerced, convey.ShouldEqual, 1)
		})

		convey.Convey("Then an empty numeric cell is missing but not counted as coerced", func() {
			convey.So(math.IsNaN(tbl.Records[2].Like), convey.ShouldBeTrue)
			convey.So(tbl.Records[2].IsMissing(data.ColLike), convey.ShouldBeTrue)
		})

		convey.Convey("Then empty text cells are missing", func() {
			convey.So(tbl.Records[0].IsMissing(data.ColDescription), convey.ShouldBeTrue)
			convey.So(tbl.Records[1].IsMissing(data.ColDescription), convey.ShouldBeFalse)
		})

		convey.Convey("Then the schema reflects the header", func() {
			convey.So(tbl.Schema.Has(data.ColDislike), convey.ShouldBeTrue)
			convey.So(tbl.Schema.TypeOf(data.ColView), convey.ShouldEqual, data.TypeFloat)
			convey.So(tbl.Schema.TypeOf(data.ColPublishTime), convey.ShouldEqual, data.TypeTime)
		})
	})

	convey.Convey("Given a header without a required column", t, func() {
		_, err := data.ReadRecords(strings.NewReader("video_id,publish_time,category_id,view,like\nx,2021-01-01,1,1,1\n"))

		convey.Convey("Then loading fails with ErrMissingColumn", func() {
			convey.So(errors.Is(err, data.ErrMissingColumn), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "comment")
		})
	})

	convey.Convey("Given a row wider than the header between valid rows", t, func() {
		src := "video_id,publish_time,category_id,view,like,comment\n" +
			"a,2021-01-01T00:00:00Z,10,1,1,1\n" +
			"b,2021-01-01T00:00:00Z,10,2,2,2,extra\n" +
			"c,2021-01-01T00:00:00Z,10,3,3,3\n"
		tbl, err := data.ReadRecords(strings.NewReader(src))

		convey.Convey("Then the row is skipped and loading continues", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(tbl.Stats.Skipped, convey.ShouldEqual, 1)
			convey.So(tbl.Stats.Rows, convey.ShouldEqual, 2)
			convey.So(tbl.Records[1].VideoID, convey.ShouldEqual, "c")
		})
	})

	convey.Convey("Given a source that fails mid-read", t, func() {
		boom := errors.New("disk gone")
		src := io.MultiReader(
			strings.NewReader("video_id,publish_time,category_id,view,like,comment\na,2021-01-01T00:00:00Z,10,1,1,1\n"),
			iotest.ErrReader(boom),
		)
		_, err := data.ReadRecords(src)

		convey.Convey("Then the read error is returned", func() {
			convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an empty source", t, func() {
		_, err := data.ReadRecords(strings.NewReader(""))
		convey.So(errors.Is(err, data.ErrNoHeader), convey.ShouldBeTrue)
	})

	convey.Convey("Given a file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "trending.csv")
		convey.So(os.WriteFile(path, []byte(sampleCSV), 0o644), convey.ShouldBeNil)

		tbl, err := data.LoadRecords(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(tbl.Records, convey.ShouldHaveLength, 3)

		_, err = data.LoadRecords(filepath.Join(t.TempDir(), "missing.csv"))
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestCategories(t *testing.T) {
	convey.Convey("Given a category lookup", t, func() {
		cats, err := data.ReadCategories(strings.NewReader(sampleLookup))

		convey.Convey("Then string and numeric ids resolve", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cats.Len(), convey.ShouldEqual, 2)
			name, ok := cats.Name("10")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(name, convey.ShouldEqual, "Music")
		})

		convey.Convey("When joined onto records", func() {
			tbl, _ := data.ReadRecords(strings.NewReader(sampleCSV))
			joined := data.JoinTable(tbl, cats)

			convey.Convey("Then mapped codes carry names and unmapped ones are missing", func() {
				convey.So(joined.Records[0].CategoryName, convey.ShouldEqual, "Entertainment")
				convey.So(joined.Records[1].CategoryName, convey.ShouldEqual, "Music")
				convey.So(joined.Records[2].CategoryName, convey.ShouldEqual, "")
				convey.So(joined.Stats.Uncatalogued, convey.ShouldEqual, 1)
				convey.So(joined.Schema.Has(data.ColCategoryName), convey.ShouldBeTrue)
			})

			convey.Convey("Then the input table is left untouched", func() {
				convey.So(tbl.Records[0].CategoryName, convey.ShouldEqual, "")
				convey.So(tbl.Schema.Has(data.ColCategoryName), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given malformed lookup JSON", t, func() {
		_, err := data.ReadCategories(strings.NewReader(`{"items":[`))
		convey.So(errors.Is(err, data.ErrBadLookup), convey.ShouldBeTrue)
	})
}

func TestColumns(t *testing.T) {
	convey.Convey("Given the record schema", t, func() {
		convey.Convey("Then the required columns are a subset of all columns", func() {
			req := data.RequiredColumns()
			convey.So(req, convey.ShouldResemble, []string{"video_id", "publish_time", "category_id", "view", "like", "comment"})
			for _, c := range req {
				convey.So(data.Columns(), convey.ShouldContain, c)
			}
			convey.So(data.Columns(), convey.ShouldHaveLength, 17)
		})
	})
}
