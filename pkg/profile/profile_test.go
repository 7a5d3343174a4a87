package profile_test

import (
	"math"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/data"
	"watchtime/pkg/profile"
)

const csvSource = `video_id,publish_time,category_id,view,like,comment,description
a,2021-01-18T09:00:00Z,10,100,10,1,
b,2021-01-18T09:30:00Z,10,200,20,2,x
c,2021-01-19T21:00:00Z,20,300,30,3,y
c,2021-01-19T21:00:00Z,20,300,30,3,y
d,bad,99,,40,4,z
`

func TestBuild(t *testing.T) {
	convey.Convey("Given a joined table", t, func() {
		tbl, err := data.ReadRecords(strings.NewReader(csvSource))
		convey.So(err, convey.ShouldBeNil)
		cats := data.NewCategoryMap(map[string]string{"10": "Music", "20": "Gaming"})
		joined := data.JoinTable(tbl, cats)

		p := profile.Build(joined)

		convey.Convey("Then shape and column types come from the schema", func() {
			convey.So(p.Rows, convey.ShouldEqual, 5)
			convey.So(p.Columns[0], convey.ShouldResemble, profile.Column{Name: "video_id", Type: data.TypeString})
			convey.So(p.Unmapped, convey.ShouldEqual, 1)
		})

		convey.Convey("Then missing values and duplicates are counted", func() {
			convey.So(p.Missing["view"], convey.ShouldEqual, 1)
			convey.So(p.Missing["description"], convey.ShouldEqual, 1)
			convey.So(p.Missing["category_name"], convey.ShouldEqual, 1)
			convey.So(p.Duplicates, convey.ShouldEqual, 1)
		})

		convey.Convey("Then numeric columns are described without missing cells", func() {
			var view profile.Describe
			for _, d := range p.Describe {
				if d.Column == "view" {
					view = d
				}
			}
			convey.So(view.Count, convey.ShouldEqual, 4)
			convey.So(view.Mean, convey.ShouldEqual, 225)
			convey.So(view.Min, convey.ShouldEqual, 100)
			convey.So(view.Max, convey.ShouldEqual, 300)
			convey.So(view.Median, convey.ShouldEqual, 250)
			convey.So(view.Std, convey.ShouldAlmostEqual, math.Sqrt(27500.0/3), 1e-9)
		})

		convey.Convey("Then perfectly proportional counters correlate at 1", func() {
			convey.So(p.Correlation, convey.ShouldResemble, []string{"view", "like", "comment"})
			convey.So(p.Corr[0][1], convey.ShouldAlmostEqual, 1, 1e-12)
			convey.So(p.Corr[1][2], convey.ShouldAlmostEqual, 1, 1e-12)
		})

		convey.Convey("Then publish hours are bucketed from parseable timestamps", func() {
			convey.So(p.HourCounts[9], convey.ShouldEqual, 2)
			convey.So(p.HourCounts[21], convey.ShouldEqual, 2)
		})

		convey.Convey("Then views are grouped by category name", func() {
			convey.So(p.Categories, convey.ShouldHaveLength, 2)
			convey.So(p.Categories[0].Category, convey.ShouldEqual, "Gaming")
			convey.So(p.Categories[1].Category, convey.ShouldEqual, "Music")
			convey.So(p.Categories[1].Mean, convey.ShouldEqual, 150)
			convey.So(p.Views(), convey.ShouldHaveLength, 4)
			convey.So(p.ViewsByCategory()["Gaming"], convey.ShouldResemble, []float64{300, 300})
		})

		convey.Convey("Then the table itself is untouched", func() {
			convey.So(joined.Records, convey.ShouldHaveLength, 5)
			convey.So(p.String(), convey.ShouldContainSubstring, "duplicates=1")
		})
	})
}

func TestDuplicates(t *testing.T) {
	convey.Convey("Given rows whose text differs only in where a space falls", t, func() {
		src := `video_id,publish_time,category_id,view,like,comment,title,description
v1,2021-01-18T09:00:00Z,10,100,10,1,a b,c
v1,2021-01-18T09:00:00Z,10,100,10,1,a,b c
v1,2021-01-18T09:00:00Z,10,100,10,1,a b,c
`
		tbl, err := data.ReadRecords(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then only the exact repeat is a duplicate", func() {
			convey.So(profile.Build(tbl).Duplicates, convey.ShouldEqual, 1)
		})
	})

	convey.Convey("Given rows missing the same numeric cell", t, func() {
		src := "video_id,publish_time,category_id,view,like,comment\nv1,t,10,,1,1\nv1,t,10,,1,1\n"
		tbl, err := data.ReadRecords(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then they still count as duplicates", func() {
			convey.So(profile.Build(tbl).Duplicates, convey.ShouldEqual, 1)
		})
	})
}
