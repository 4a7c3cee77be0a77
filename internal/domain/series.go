package domain

import "sort"

// SeriesPoint is one year's mean anomaly for a group.
type SeriesPoint struct {
	Year int     `json:"year"`
	Tas  float64 `json:"tas"`
}

// GroupSeries is the derived trend line for one non-empty group: the mean
// anomaly across all samples in the group's bands, per year, ascending.
type GroupSeries struct {
	Group  GroupID       `json:"group"`
	Bands  []int         `json:"bands"`
	Points []SeriesPoint `json:"points"`
}

// ComputeGroupSeries derives one series per non-empty group from the loaded
// samples. A year appears in a group's series only if at least one sample
// falls in a band the group owns. Samples whose latitude maps to no band are
// ignored.
func ComputeGroupSeries(samples []Sample, g Grouping) []GroupSeries {
	type bucket struct {
		sum   float64
		count int
	}

	// byGroup[id-1] maps year to its running mean state.
	var byGroup [MaxGroups]map[int]*bucket

	for _, s := range samples {
		band, ok := BandForLatitude(s.Lat)
		if !ok {
			continue
		}
		id := g[band]
		if id == Unassigned {
			continue
		}
		m := byGroup[id-1]
		if m == nil {
			m = make(map[int]*bucket)
			byGroup[id-1] = m
		}
		b := m[s.Year]
		if b == nil {
			b = &bucket{}
			m[s.Year] = b
		}
		b.sum += s.Tas
		b.count++
	}

	var out []GroupSeries
	for _, id := range g.NonEmptyGroups() {
		m := byGroup[id-1]
		points := make([]SeriesPoint, 0, len(m))
		for year, b := range m {
			points = append(points, SeriesPoint{Year: year, Tas: b.sum / float64(b.count)})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		out = append(out, GroupSeries{
			Group:  id,
			Bands:  g.BandsIn(id),
			Points: points,
		})
	}
	return out
}
