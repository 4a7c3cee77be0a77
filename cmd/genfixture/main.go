// Command genfixture writes a synthetic zonal anomaly CSV plus the grouped
// series the default preset derives from it. It uses the actual domain
// package so the JSON fixture matches real service behavior, which keeps
// test assertions honest when the synthetic model changes.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -csv-out data/zonal_anomalies.csv \
//	  -series-out data/mock/default_grouping_series.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
)

const (
	firstYear = 1880
	lastYear  = 2024
	seed      = 1938 // fixed so fixtures are reproducible run to run
)

// latCenters are the zonal slice midpoints, two per band.
var latCenters = []float64{-82.5, -67.5, -52.5, -37.5, -22.5, -7.5, 7.5, 22.5, 37.5, 52.5, 67.5, 82.5}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the anomaly CSV fixture")
	seriesOut := flag.String("series-out", "", "output path for the default-grouping series JSON")
	flag.Parse()

	if *csvOut == "" || *seriesOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -series-out")
	}

	samples := generate()

	if err := writeCSV(*csvOut, samples); err != nil {
		return fmt.Errorf("writing CSV fixture: %w", err)
	}
	log.Printf("wrote CSV fixture: %s (%d rows)", *csvOut, len(samples))

	series := domain.ComputeGroupSeries(samples, domain.DefaultGrouping())
	if err := writeJSON(*seriesOut, series); err != nil {
		return fmt.Errorf("writing series fixture: %w", err)
	}
	log.Printf("wrote series fixture: %s (%d groups)", *seriesOut, len(series))

	printStats(samples, series)
	return nil
}

// generate builds anomalies from a simple physical sketch: a warming trend
// that accelerates after 1970, amplified toward the poles, plus small
// deterministic noise.
func generate() []domain.Sample {
	rng := rand.New(rand.NewSource(seed))

	var samples []domain.Sample
	for year := firstYear; year <= lastYear; year++ {
		trend := 0.004 * float64(year-firstYear)
		if year > 1970 {
			trend += 0.015 * float64(year-1970)
		}
		for _, lat := range latCenters {
			amplification := 1 + 1.5*math.Pow(math.Abs(lat)/90, 2)
			noise := rng.NormFloat64() * 0.08
			samples = append(samples, domain.Sample{
				Year: year,
				Lat:  lat,
				Tas:  round3(trend*amplification + noise - 0.2),
			})
		}
	}
	return samples
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func writeCSV(path string, samples []domain.Sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"year", "lat", "tas"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Year),
			strconv.FormatFloat(s.Lat, 'g', -1, 64),
			strconv.FormatFloat(s.Tas, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(samples []domain.Sample, series []domain.GroupSeries) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total samples: %d (%d years x %d slices)\n",
		len(samples), lastYear-firstYear+1, len(latCenters))

	for _, s := range series {
		first := s.Points[0]
		last := s.Points[len(s.Points)-1]
		fmt.Printf("Group %d (bands %v): %d points, %d→%d, tas %.3f→%.3f\n",
			s.Group, s.Bands, len(s.Points), first.Year, last.Year, first.Tas, last.Tas)
	}
}
