package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/adapter/topology"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
)

// Map dimensions: a 2:1 equirectangular canvas.
const (
	mapWidth  = 720
	mapHeight = 360
)

// mapSVGTemplate draws, back to front: ocean, country outlines (or a plain
// graticule when no topology is available), the six latitude strips, and a
// hairline frame. Strips carry data-band attributes so the host page can
// attach click handlers.
const mapSVGTemplate = `<svg id="latmap-svg" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Width}} {{.Height}}" width="{{.Width}}" height="{{.Height}}">
  <rect width="{{.Width}}" height="{{.Height}}" fill="#dbe9f4"/>
{{- range .Outlines}}
  <path d="{{.}}" fill="#f4f1e8" stroke="#b0a98f" stroke-width="0.5"/>
{{- end}}
{{- range .Graticule}}
  <line x1="0" y1="{{.}}" x2="{{$.Width}}" y2="{{.}}" stroke="#ffffff" stroke-width="0.5"/>
{{- end}}
{{- range .Strips}}
  <rect class="band-strip" data-band="{{.Band}}" x="0" y="{{.Y}}" width="{{$.Width}}" height="{{.Height}}" fill="{{.Fill}}" fill-opacity="{{.Opacity}}" stroke="#333333" stroke-width="0.3">
    <title>{{.Title}}</title>
  </rect>
{{- end}}
  <rect width="{{.Width}}" height="{{.Height}}" fill="none" stroke="#666666" stroke-width="1"/>
</svg>
`

var mapTemplate = template.Must(template.New("latmap").Parse(mapSVGTemplate))

type mapStrip struct {
	Band    int
	Y       float64
	Height  float64
	Fill    string
	Opacity string
	Title   string
}

type mapData struct {
	Width     int
	Height    int
	Outlines  []string
	Graticule []float64
	Strips    []mapStrip
}

// MapRenderer draws the world basemap with group-colored latitude strips.
type MapRenderer struct {
	provider topology.Provider // nil when the basemap is disabled
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewMapRenderer creates a map renderer. Pass a nil provider to draw strips
// over a plain graticule instead of country outlines.
func NewMapRenderer(provider topology.Provider, logger *slog.Logger, metrics *observability.Metrics) *MapRenderer {
	return &MapRenderer{provider: provider, logger: logger, metrics: metrics}
}

// Render draws the full map for the given grouping. Topology failures
// degrade to the graticule-only basemap rather than failing the render.
func (r *MapRenderer) Render(ctx context.Context, g domain.Grouping) ([]byte, error) {
	start := time.Now()
	defer func() {
		r.metrics.RenderDuration.WithLabelValues("map").Observe(time.Since(start).Seconds())
	}()

	data := mapData{
		Width:  mapWidth,
		Height: mapHeight,
		Strips: strips(g),
	}

	if world, ok := r.boundaries(ctx); ok {
		data.Outlines = outlinePaths(world)
	} else {
		data.Graticule = graticuleLines()
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render map svg: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *MapRenderer) boundaries(ctx context.Context) (topology.World, bool) {
	if r.provider == nil {
		return topology.World{}, false
	}
	world, err := r.provider.Boundaries(ctx)
	if err != nil {
		r.logger.Warn("basemap unavailable, rendering graticule only", "error", err)
		return topology.World{}, false
	}
	return world, len(world.Rings) > 0
}

// project maps lon/lat degrees onto the SVG canvas (equirectangular).
func project(lon, lat float64) (x, y float64) {
	x = (lon + 180) / 360 * mapWidth
	y = (90 - lat) / 180 * mapHeight
	return x, y
}

func outlinePaths(world topology.World) []string {
	paths := make([]string, 0, len(world.Rings))
	for _, ring := range world.Rings {
		if len(ring) < 3 {
			continue
		}
		var b strings.Builder
		for i, pt := range ring {
			x, y := project(pt.Lon, pt.Lat)
			if i == 0 {
				fmt.Fprintf(&b, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&b, "L%.1f,%.1f", x, y)
			}
		}
		b.WriteString("Z")
		paths = append(paths, b.String())
	}
	return paths
}

func graticuleLines() []float64 {
	ys := make([]float64, 0, domain.NumBands-1)
	for _, b := range domain.Bands() {
		if b.MinLat == -90 {
			continue
		}
		_, y := project(0, b.MinLat)
		ys = append(ys, y)
	}
	return ys
}

func strips(g domain.Grouping) []mapStrip {
	out := make([]mapStrip, 0, domain.NumBands)
	for _, b := range domain.Bands() {
		_, top := project(0, b.MaxLat)
		_, bottom := project(0, b.MinLat)

		id := g.Group(b.ID)
		opacity := "0.45"
		title := fmt.Sprintf("%s — group %d", b.Label(), id)
		if id == domain.Unassigned {
			opacity = "0.15"
			title = fmt.Sprintf("%s — unassigned", b.Label())
		}

		out = append(out, mapStrip{
			Band:    b.ID,
			Y:       top,
			Height:  bottom - top,
			Fill:    GroupColorHex(id),
			Opacity: opacity,
			Title:   title,
		})
	}
	return out
}
