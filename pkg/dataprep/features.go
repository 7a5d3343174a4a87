package dataprep

import (
	"math"
	"strings"
	"time"

	"watchtime/pkg/data"
)

// Derived column names.
const (
	ColPublishHour     = "publish_hour"
	ColPublishDay      = "publish_day"
	ColEngagementScore = "engagement_score"
	ColWatchTimeProxy  = "watch_time_proxy"
)

// Observation is a record after identifying and visual columns have been
// dropped, carrying the engineered features. PublishHour, EngagementScore
// and WatchTimeProxy are NaN until derived; PublishDay is "" when missing.
type Observation struct {
	ChannelID    string
	ChannelName  string
	Title        string
	Description  string
	Tags         string
	CategoryID   string
	CategoryName string
	PublishTime  string
	TrendingTime string

	View     float64
	Like     float64
	Dislike  float64
	Favorite float64
	Comment  float64

	Published       time.Time
	PublishHour     float64
	PublishDay      string
	EngagementScore float64
	WatchTimeProxy  float64
}

// IdentifyingColumns carry no predictive signal and would need
// high-cardinality encoding.
var IdentifyingColumns = []string{
	data.ColVideoID,
	data.ColThumbnailURL,
	data.ColThumbnailWidth,
	data.ColThumbnailHeight,
}

// StripIdentifiers converts records to observations, leaving out the
// IdentifyingColumns.
func StripIdentifiers(recs []data.Record) []Observation {
	out := make([]Observation, len(recs))
	nan := math.NaN()
	for i, r := range recs {
		out[i] = Observation{
			ChannelID:       r.ChannelID,
			ChannelName:     r.ChannelName,
			Title:           r.Title,
			Description:     r.Description,
			Tags:            r.Tags,
			CategoryID:      r.CategoryID,
			CategoryName:    r.CategoryName,
			PublishTime:     r.PublishTime,
			TrendingTime:    r.TrendingTime,
			View:            r.View,
			Like:            r.Like,
			Dislike:         r.Dislike,
			Favorite:        r.Favorite,
			Comment:         r.Comment,
			PublishHour:     nan,
			EngagementScore: nan,
			WatchTimeProxy:  nan,
		}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTimestamp parses the timestamp formats seen in trending exports.
// The hour is kept in the offset the timestamp was written in.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AddPublishFeatures derives hour of day and weekday name from the publish
// timestamp. Unparseable timestamps leave both missing; the number of such
// observations is returned.
func AddPublishFeatures(obs []Observation) ([]Observation, int) {
	out := make([]Observation, len(obs))
	failed := 0
	for i, o := range obs {
		if t, ok := ParseTimestamp(o.PublishTime); ok {
			o.Published = t
			o.PublishHour = float64(t.Hour())
			o.PublishDay = t.Weekday().String()
		} else {
			o.Published = time.Time{}
			o.PublishHour = math.NaN()
			o.PublishDay = ""
			failed++
		}
		out[i] = o
	}
	return out, failed
}

// FilterPositiveViews keeps observations with view > 0. Missing views are
// removed as well, so the engagement ratio never divides by zero or NaN.
func FilterPositiveViews(obs []Observation) []Observation {
	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if o.View > 0 {
			out = append(out, o)
		}
	}
	return out
}

// EngagementScore returns (like + comment) / view.
func EngagementScore(like, comment, view float64) float64 {
	return (like + comment) / view
}

// WatchTimeProxy returns view * engagement.
func WatchTimeProxy(view, engagement float64) float64 {
	return view * engagement
}

// AddEngagement computes the engagement score and the watch-time proxy.
// Callers must have applied FilterPositiveViews first.
func AddEngagement(obs []Observation) []Observation {
	out := make([]Observation, len(obs))
	for i, o := range obs {
		o.EngagementScore = EngagementScore(o.Like, o.Comment, o.View)
		o.WatchTimeProxy = WatchTimeProxy(o.View, o.EngagementScore)
		out[i] = o
	}
	return out
}
