package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
)

// Chart dimensions in points.
const (
	chartWidth  = 720
	chartHeight = 450
)

// ChartRenderer draws the per-group anomaly trend lines as an SVG document.
type ChartRenderer struct {
	metrics *observability.Metrics
}

// NewChartRenderer creates a chart renderer.
func NewChartRenderer(metrics *observability.Metrics) *ChartRenderer {
	return &ChartRenderer{metrics: metrics}
}

// Render draws one line per non-empty group plus the preset callouts when
// they apply. An empty series list still produces a valid axes-only chart.
func (r *ChartRenderer) Render(series []domain.GroupSeries, annotations []domain.Annotation) ([]byte, error) {
	start := time.Now()
	defer func() {
		r.metrics.RenderDuration.WithLabelValues("chart").Observe(time.Since(start).Seconds())
	}()

	p := plot.New()
	p.Title.Text = "Zonal temperature anomaly by group"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Anomaly (°C)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	plotted := 0
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(toXYs(s.Points))
		if err != nil {
			return nil, fmt.Errorf("chart line for group %d: %w", s.Group, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = GroupColor(s.Group)
		p.Add(line)
		p.Legend.Add(legendLabel(s), line)
		plotted++
	}

	// With nothing plotted the axes have no data range; pin a neutral one so
	// the empty chart still draws.
	if plotted == 0 {
		p.X.Min, p.X.Max = 1880, 2020
		p.Y.Min, p.Y.Max = -1, 1
	}

	if labels, err := annotationLabels(series, annotations); err != nil {
		return nil, err
	} else if labels != nil {
		p.Add(labels)
	}

	w, err := p.WriterTo(vg.Points(chartWidth), vg.Points(chartHeight), "svg")
	if err != nil {
		return nil, fmt.Errorf("render chart svg: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart svg: %w", err)
	}
	return buf.Bytes(), nil
}

// annotationLabels places each callout at the final point of its group's
// line. Callouts for groups without a series are dropped.
func annotationLabels(series []domain.GroupSeries, annotations []domain.Annotation) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for _, a := range annotations {
		for _, s := range series {
			if s.Group != a.Group || len(s.Points) == 0 {
				continue
			}
			last := s.Points[len(s.Points)-1]
			xys = append(xys, plotter.XY{X: float64(last.Year), Y: last.Tas})
			texts = append(texts, a.Text)
		}
	}
	if len(xys) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("chart annotations: %w", err)
	}
	return labels, nil
}

func legendLabel(s domain.GroupSeries) string {
	bands := domain.Bands()
	parts := make([]string, 0, len(s.Bands))
	for _, b := range s.Bands {
		parts = append(parts, bands[b].Label())
	}
	return fmt.Sprintf("Group %d: %s", s.Group, strings.Join(parts, ", "))
}

func toXYs(points []domain.SeriesPoint) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(pt.Year), Y: pt.Tas}
	}
	return xys
}
