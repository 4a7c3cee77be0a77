package render_test

import (
	"testing"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() []domain.GroupSeries {
	return []domain.GroupSeries{
		{
			Group: 1,
			Bands: []int{0, 5},
			Points: []domain.SeriesPoint{
				{Year: 1990, Tas: 0.2},
				{Year: 1991, Tas: 0.3},
				{Year: 1992, Tas: 0.5},
			},
		},
		{
			Group: 3,
			Bands: []int{2, 3},
			Points: []domain.SeriesPoint{
				{Year: 1990, Tas: 0.05},
				{Year: 1991, Tas: 0.04},
			},
		},
	}
}

func TestChartRenderer_Render(t *testing.T) {
	r := render.NewChartRenderer(observability.NewMetricsForTesting())

	svg, err := r.Render(testSeries(), nil)
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Zonal temperature anomaly by group")
	assert.Contains(t, out, "Year")
	// Legend names both groups by their band ranges.
	assert.Contains(t, out, "Group 1: 90°S–60°S, 60°N–90°N")
	assert.Contains(t, out, "Group 3: 30°S–0°, 0°–30°N")
}

func TestChartRenderer_RenderEmpty(t *testing.T) {
	r := render.NewChartRenderer(observability.NewMetricsForTesting())

	svg, err := r.Render(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestChartRenderer_RenderAnnotations(t *testing.T) {
	r := render.NewChartRenderer(observability.NewMetricsForTesting())
	annotations := []domain.Annotation{
		{Group: 1, Text: "Polar regions warm fastest"},
		{Group: 3, Text: "Tropics stay closest to baseline"},
	}

	svg, err := r.Render(testSeries(), annotations)
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, "Polar regions warm fastest")
	assert.Contains(t, out, "Tropics stay closest to baseline")
}

func TestChartRenderer_AnnotationForMissingSeriesDropped(t *testing.T) {
	r := render.NewChartRenderer(observability.NewMetricsForTesting())
	annotations := []domain.Annotation{
		{Group: 2, Text: "No such line"},
	}

	svg, err := r.Render(testSeries(), annotations)
	require.NoError(t, err)
	assert.NotContains(t, string(svg), "No such line")
}

func TestGroupColorHex(t *testing.T) {
	assert.Equal(t, "#1f77b4", render.GroupColorHex(1))
	assert.Equal(t, "#ff7f0e", render.GroupColorHex(2))
	assert.Equal(t, "#2ca02c", render.GroupColorHex(3))
	assert.Equal(t, "#999999", render.GroupColorHex(domain.Unassigned))
}
