package domain

// Annotation is a callout drawn next to a group's line on the chart.
type Annotation struct {
	Group GroupID `json:"group"`
	Text  string  `json:"text"`
}

// PresetAnnotations returns the two hardcoded callouts shown when the
// grouping matches the default poles/mid-latitudes/tropics preset, and nil
// otherwise. The callouts are cosmetic commentary on that one preset, not a
// rule derived from the data.
func PresetAnnotations(g Grouping) []Annotation {
	if !g.IsDefault() {
		return nil
	}
	return []Annotation{
		{Group: 1, Text: "Polar regions warm fastest"},
		{Group: 3, Text: "Tropics stay closest to baseline"},
	}
}
