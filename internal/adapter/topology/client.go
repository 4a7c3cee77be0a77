// Package topology fetches and caches the world-boundaries GeoJSON used for
// the basemap behind the latitude strips.
package topology

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
)

// Point is a lon/lat coordinate in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Ring is the closed exterior outline of one landmass polygon.
type Ring []Point

// World holds the country outlines of the basemap.
type World struct {
	Rings []Ring
}

// Provider supplies world boundaries to the map renderer.
type Provider interface {
	Boundaries(ctx context.Context) (World, error)
}

// Client fetches world boundaries from a remote GeoJSON resource.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a boundaries client for the configured topology URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Boundaries fetches and decodes the world GeoJSON. Only the exterior ring
// of each polygon is kept; holes add nothing at basemap scale.
func (c *Client) Boundaries(ctx context.Context) (World, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.metrics.TopologyFetches.WithLabelValues("error").Inc()
		return World{}, fmt.Errorf("create topology request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.TopologyFetches.WithLabelValues("error").Inc()
		return World{}, fmt.Errorf("topology request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.metrics.TopologyFetches.WithLabelValues("error").Inc()
		return World{}, fmt.Errorf("topology fetch: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.TopologyFetches.WithLabelValues("error").Inc()
		return World{}, fmt.Errorf("read topology response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		c.metrics.TopologyFetches.WithLabelValues("error").Inc()
		return World{}, fmt.Errorf("decode topology geojson: %w", err)
	}

	world := fromFeatureCollection(fc)
	if len(world.Rings) == 0 {
		c.metrics.TopologyFetches.WithLabelValues("empty").Inc()
		return World{}, nil
	}

	c.metrics.TopologyFetches.WithLabelValues("success").Inc()
	c.logger.Debug("topology loaded", "rings", len(world.Rings))
	return world, nil
}

func fromFeatureCollection(fc *geojson.FeatureCollection) World {
	var world World
	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			world.Rings = appendExterior(world.Rings, geom)
		case orb.MultiPolygon:
			for _, poly := range geom {
				world.Rings = appendExterior(world.Rings, poly)
			}
		}
	}
	return world
}

func appendExterior(rings []Ring, poly orb.Polygon) []Ring {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return rings
	}
	ring := make(Ring, len(poly[0]))
	for i, pt := range poly[0] {
		ring[i] = Point{Lon: pt.Lon(), Lat: pt.Lat()}
	}
	return append(rings, ring)
}
