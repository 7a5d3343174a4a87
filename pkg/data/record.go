package data

import "math"

// Record is one trending-video observation. Numeric fields hold math.NaN()
// when the source cell is empty or could not be parsed; text fields hold ""
// when missing.
type Record struct {
	VideoID         string
	PublishTime     string
	TrendingTime    string
	ChannelID       string
	ChannelName     string
	Title           string
	Description     string
	Tags            string
	ThumbnailURL    string
	ThumbnailWidth  float64
	ThumbnailHeight float64
	CategoryID      string
	CategoryName    string
	View            float64
	Like            float64
	Dislike         float64
	Favorite        float64
	Comment         float64
}

// emptyRecord returns a Record with every numeric field missing.
func emptyRecord() Record {
	nan := math.NaN()
	return Record{
		ThumbnailWidth:  nan,
		ThumbnailHeight: nan,
		View:            nan,
		Like:            nan,
		Dislike:         nan,
		Favorite:        nan,
		Comment:         nan,
	}
}

// Float returns the numeric value of a float-typed column.
func (r Record) Float(col string) (float64, bool) {
	switch col {
	case ColThumbnailWidth:
		return r.ThumbnailWidth, true
	case ColThumbnailHeight:
		return r.ThumbnailHeight, true
	case ColView:
		return r.View, true
	case ColLike:
		return r.Like, true
	case ColDislike:
		return r.Dislike, true
	case ColFavorite:
		return r.Favorite, true
	case ColComment:
		return r.Comment, true
	}
	return 0, false
}

// Text returns the value of a string- or time-typed column.
func (r Record) Text(col string) (string, bool) {
	switch col {
	case ColVideoID:
		return r.VideoID, true
	case ColPublishTime:
		return r.PublishTime, true
	case ColTrendingTime:
		return r.TrendingTime, true
	case ColChannelID:
		return r.ChannelID, true
	case ColChannelName:
		return r.ChannelName, true
	case ColTitle:
		return r.Title, true
	case ColDescription:
		return r.Description, true
	case ColTags:
		return r.Tags, true
	case ColThumbnailURL:
		return r.ThumbnailURL, true
	case ColCategoryID:
		return r.CategoryID, true
	case ColCategoryName:
		return r.CategoryName, true
	}
	return "", false
}

// IsMissing reports whether the column value is missing for this record.
func (r Record) IsMissing(col string) bool {
	if v, ok := r.Float(col); ok {
		return math.IsNaN(v)
	}
	if s, ok := r.Text(col); ok {
		return s == ""
	}
	return true
}

func (r *Record) set(col, raw string) (coerced bool) {
	switch col {
	case ColVideoID:
		r.VideoID = raw
	case ColPublishTime:
		r.PublishTime = raw
	case ColTrendingTime:
		r.TrendingTime = raw
	case ColChannelID:
		r.ChannelID = raw
	case ColChannelName:
		r.ChannelName = raw
	case ColTitle:
		r.Title = raw
	case ColDescription:
		r.Description = raw
	case ColTags:
		r.Tags = raw
	case ColThumbnailURL:
		r.ThumbnailURL = raw
	case ColCategoryID:
		r.CategoryID = raw
	case ColThumbnailWidth:
		r.ThumbnailWidth, coerced = parseFloat(raw)
	case ColThumbnailHeight:
		r.ThumbnailHeight, coerced = parseFloat(raw)
	case ColView:
		r.View, coerced = parseFloat(raw)
	case ColLike:
		r.Like, coerced = parseFloat(raw)
	case ColDislike:
		r.Dislike, coerced = parseFloat(raw)
	case ColFavorite:
		r.Favorite, coerced = parseFloat(raw)
	case ColComment:
		r.Comment, coerced = parseFloat(raw)
	}
	return coerced
}
