package topology

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// worldGeoJSON carries one Polygon country and one MultiPolygon country with
// a hole; only exterior rings should survive decoding.
const worldGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Squareland"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Twin Isles"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[20,20],[30,20],[30,30],[20,20]], [[22,22],[24,22],[24,24],[22,22]]],
          [[[-40,-10],[-30,-10],[-30,0],[-40,-10]]]
        ]
      }
    }
  ]
}`

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Boundaries_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(worldGeoJSON))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger(), testMetrics())
	world, err := c.Boundaries(context.Background())
	require.NoError(t, err)

	// Polygon exterior + two MultiPolygon exteriors; the hole is dropped.
	require.Len(t, world.Rings, 3)
	assert.Equal(t, Point{Lon: 0, Lat: 0}, world.Rings[0][0])
	assert.Equal(t, Point{Lon: 20, Lat: 20}, world.Rings[1][0])
	assert.Equal(t, Point{Lon: -40, Lat: -10}, world.Rings[2][0])
}

func TestClient_Boundaries_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger(), testMetrics())
	_, err := c.Boundaries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_Boundaries_MalformedGeoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{"type": "FeatureCollection", "features": [{`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger(), testMetrics())
	_, err := c.Boundaries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode topology geojson")
}

func TestClient_Boundaries_EmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger(), testMetrics())
	world, err := c.Boundaries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, world.Rings)
}
