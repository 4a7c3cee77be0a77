// Command validate performs integrity checks on a zonal anomaly CSV before
// it is handed to the service: column presence, numeric parsing, latitude
// range, year continuity, and per-band coverage.
//
// Usage:
//
//	go run ./cmd/validate -csv data/zonal_anomalies.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/dataset"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the zonal anomaly CSV")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	phases, err := validate(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d phases failed\n", failed, len(phases))
		os.Exit(1)
	}
	fmt.Printf("\nall %d phases passed\n", len(phases))
}

func validate(path string) ([]*phase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := dataset.Parse(f)
	if err != nil {
		return nil, err
	}

	return []*phase{
		checkParsing(result),
		checkLatitudes(result.Samples),
		checkYears(result.Samples),
		checkBandCoverage(result.Samples),
	}, nil
}

func checkParsing(result dataset.LoadResult) *phase {
	p := &phase{name: "parsing"}
	if len(result.Samples) == 0 {
		p.errorf("no parseable rows")
	}
	if result.Skipped > 0 {
		p.errorf("%d malformed rows skipped", result.Skipped)
	}
	return p
}

func checkLatitudes(samples []domain.Sample) *phase {
	p := &phase{name: "latitude range"}
	for i, s := range samples {
		if _, ok := domain.BandForLatitude(s.Lat); !ok {
			p.errorf("row %d: latitude %g outside [-90, 90]", i+1, s.Lat)
		}
	}
	return p
}

func checkYears(samples []domain.Sample) *phase {
	p := &phase{name: "year continuity"}

	years := map[int]bool{}
	for _, s := range samples {
		years[s.Year] = true
	}
	if len(years) == 0 {
		return p
	}

	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			p.errorf("gap between year %d and %d", sorted[i-1], sorted[i])
		}
	}
	return p
}

func checkBandCoverage(samples []domain.Sample) *phase {
	p := &phase{name: "band coverage"}

	var counts [domain.NumBands]int
	for _, s := range samples {
		if band, ok := domain.BandForLatitude(s.Lat); ok {
			counts[band]++
		}
	}

	for _, b := range domain.Bands() {
		if counts[b.ID] == 0 {
			p.errorf("band %d (%s) has no samples", b.ID, b.Label())
		}
	}
	return p
}
