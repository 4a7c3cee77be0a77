// Package dataset loads zonal anomaly samples from a CSV resource and keeps
// the in-memory copy fresh.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/config"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
)

// LoadResult is one completed load: the parsed samples plus the number of
// malformed rows that were skipped.
type LoadResult struct {
	Samples []domain.Sample
	Skipped int
}

// Loader reads the anomaly CSV from a local path or an HTTP(S) URL.
type Loader struct {
	path       string
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a Loader from the dataset configuration. When both a
// path and a URL are configured the URL wins. The HTTP client carries the
// configured timeout so a stalled remote fails the load and the refresher
// can retry, instead of blocking the load loop forever.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		path: cfg.DatasetPath,
		url:  cfg.DatasetURL,
		httpClient: &http.Client{
			Timeout: cfg.DatasetTimeout,
		},
		logger: logger,
	}
}

// Load fetches and parses the configured CSV resource.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	r, closeFn, err := l.open(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	defer closeFn()

	result, err := Parse(r)
	if err != nil {
		return LoadResult{}, err
	}

	if result.Skipped > 0 {
		l.logger.Warn("skipped malformed dataset rows",
			"skipped", result.Skipped,
			"loaded", len(result.Samples),
		)
	}
	return result, nil
}

func (l *Loader) open(ctx context.Context) (io.Reader, func() error, error) {
	if l.url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("create dataset request: %w", err)
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch dataset: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("fetch dataset: status %d", resp.StatusCode)
		}
		return resp.Body, resp.Body.Close, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, f.Close, nil
}

// Parse reads year/lat/tas rows from r. Columns are resolved by header name
// when a header row is present, positionally otherwise. Rows that fail
// numeric parsing are skipped and counted rather than failing the load.
func Parse(r io.Reader) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-row below

	rows, err := reader.ReadAll()
	if err != nil {
		return LoadResult{}, fmt.Errorf("read dataset csv: %w", err)
	}
	if len(rows) == 0 {
		return LoadResult{}, nil
	}

	yearIdx, latIdx, tasIdx := 0, 1, 2
	if hdr, ok := headerIndexes(rows[0]); ok {
		yearIdx, latIdx, tasIdx = hdr[0], hdr[1], hdr[2]
		rows = rows[1:]
	}

	var result LoadResult
	for _, row := range rows {
		s, ok := parseRow(row, yearIdx, latIdx, tasIdx)
		if !ok {
			result.Skipped++
			continue
		}
		result.Samples = append(result.Samples, s)
	}
	return result, nil
}

// headerIndexes detects a header row and resolves the year/lat/tas column
// positions from it.
func headerIndexes(row []string) ([3]int, bool) {
	idx := [3]int{-1, -1, -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "year":
			idx[0] = i
		case "lat", "latitude":
			idx[1] = i
		case "tas", "anomaly":
			idx[2] = i
		}
	}
	return idx, idx[0] >= 0 && idx[1] >= 0 && idx[2] >= 0
}

func parseRow(row []string, yearIdx, latIdx, tasIdx int) (domain.Sample, bool) {
	maxIdx := yearIdx
	for _, i := range []int{latIdx, tasIdx} {
		if i > maxIdx {
			maxIdx = i
		}
	}
	if len(row) <= maxIdx {
		return domain.Sample{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
	if err != nil {
		return domain.Sample{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[latIdx]), 64)
	if err != nil {
		return domain.Sample{}, false
	}
	tas, err := strconv.ParseFloat(strings.TrimSpace(row[tasIdx]), 64)
	if err != nil {
		return domain.Sample{}, false
	}

	return domain.Sample{Year: year, Lat: lat, Tas: tas}, true
}
