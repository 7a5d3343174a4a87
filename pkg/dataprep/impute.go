package dataprep

// TextFill holds the sentinels written into missing free-text fields.
type TextFill struct {
	Description string
	Tags        string
}

// DefaultTextFill matches the sentinels used by the trending report.
var DefaultTextFill = TextFill{Description: "No description", Tags: "No tags"}

// ImputeConstant returns a copy of col with missing ("") entries replaced
// by constant.
func ImputeConstant(col []string, constant string) []string {
	out := make([]string, len(col))
	for i, v := range col {
		if v == "" {
			v = constant
		}
		out[i] = v
	}
	return out
}

// FillText replaces missing descriptions and tags with sentinels. Text is
// never a feature, so filling keeps rows that dropping would lose.
func FillText(obs []Observation, fill TextFill) []Observation {
	desc := make([]string, len(obs))
	tags := make([]string, len(obs))
	for i, o := range obs {
		desc[i], tags[i] = o.Description, o.Tags
	}
	desc = ImputeConstant(desc, fill.Description)
	tags = ImputeConstant(tags, fill.Tags)

	out := make([]Observation, len(obs))
	for i, o := range obs {
		o.Description, o.Tags = desc[i], tags[i]
		out[i] = o
	}
	return out
}
