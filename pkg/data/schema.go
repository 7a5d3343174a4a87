package data

import (
	"fmt"
	"strings"
)

// Column types understood by the loader.
const (
	TypeString = "string"
	TypeFloat  = "float"
	TypeTime   = "time"
)

// Column names of the trending dataset.
const (
	ColVideoID         = "video_id"
	ColPublishTime     = "publish_time"
	ColTrendingTime    = "trending_time"
	ColChannelID       = "channel_id"
	ColChannelName     = "channel_name"
	ColTitle           = "title"
	ColDescription     = "description"
	ColTags            = "tags"
	ColThumbnailURL    = "thumbnail_url"
	ColThumbnailWidth  = "thumbnail_width"
	ColThumbnailHeight = "thumbnail_height"
	ColCategoryID      = "category_id"
	ColCategoryName    = "category_name"
	ColView            = "view"
	ColLike            = "like"
	ColDislike         = "dislike"
	ColFavorite        = "favorite"
	ColComment         = "comment"
)

// Schema describes the structure of a dataset.
type Schema struct {
	FeatureNames []string
	Types        []string
}

// known lists every column the Record type can hold, with its declared type.
var known = []struct {
	name, typ string
	required  bool
}{
	{ColVideoID, TypeString, true},
	{ColPublishTime, TypeTime, true},
	{ColTrendingTime, TypeTime, false},
	{ColChannelID, TypeString, false},
	{ColChannelName, TypeString, false},
	{ColTitle, TypeString, false},
	{ColDescription, TypeString, false},
	{ColTags, TypeString, false},
	{ColThumbnailURL, TypeString, false},
	{ColThumbnailWidth, TypeFloat, false},
	{ColThumbnailHeight, TypeFloat, false},
	{ColCategoryID, TypeString, true},
	{ColView, TypeFloat, true},
	{ColLike, TypeFloat, true},
	{ColDislike, TypeFloat, false},
	{ColFavorite, TypeFloat, false},
	{ColComment, TypeFloat, true},
}

// Columns returns every column a source may provide, in schema order.
func Columns() []string {
	out := make([]string, len(known))
	for i, k := range known {
		out[i] = k.name
	}
	return out
}

// RequiredColumns returns the columns a source must provide.
func RequiredColumns() []string {
	var out []string
	for _, k := range known {
		if k.required {
			out = append(out, k.name)
		}
	}
	return out
}

// SchemaFromHeader validates a CSV header and returns the schema of the
// recognised columns in header order. Unknown columns are ignored.
func SchemaFromHeader(header []string) (Schema, error) {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[normalize(h)] = true
	}
	var missing []string
	for _, name := range RequiredColumns() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Schema{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var s Schema
	for _, h := range header {
		name := normalize(h)
		for _, k := range known {
			if k.name == name {
				s.FeatureNames = append(s.FeatureNames, name)
				s.Types = append(s.Types, k.typ)
				break
			}
		}
	}
	return s, nil
}

// Has reports whether the schema contains the column.
func (s Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// Index returns the column position or -1.
func (s Schema) Index(name string) int {
	for i, n := range s.FeatureNames {
		if n == name {
			return i
		}
	}
	return -1
}

// TypeOf returns the declared type of a column, or "" when absent.
func (s Schema) TypeOf(name string) string {
	if i := s.Index(name); i >= 0 {
		return s.Types[i]
	}
	return ""
}

// WithColumn returns a copy of s with an extra column appended.
func (s Schema) WithColumn(name, typ string) Schema {
	out := Schema{
		FeatureNames: append(append([]string(nil), s.FeatureNames...), name),
		Types:        append(append([]string(nil), s.Types...), typ),
	}
	return out
}

func normalize(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
