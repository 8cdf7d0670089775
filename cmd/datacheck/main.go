// Command datacheck loads the survey points and the boundary file the same way
// the dashboard does and reports how well they line up: dropped rows, points
// per region, regions without a matching boundary, and points that fall
// outside every boundary polygon.
//
// Usage:
//
//	go run ./cmd/datacheck \
//	  -points Maize_Fingerprint_2015_EC_GPS_onlyUpdated.csv \
//	  -boundaries eth_admin1.shp \
//	  -name-column adm1_name
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/gps-points-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
)

// maxListed caps the per-phase error listing so a bad file doesn't flood the terminal.
const maxListed = 20

// phase tracks pass/fail for a check.
type phase struct {
	name    string
	errors  []string
	omitted int
}

func (p *phase) errorf(format string, args ...any) {
	if len(p.errors) >= maxListed {
		p.omitted++
		return
	}
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	pointsPath := flag.String("points", "Maize_Fingerprint_2015_EC_GPS_onlyUpdated.csv", "path to the GPS points CSV")
	boundaryPath := flag.String("boundaries", "eth_admin1.shp", "path to the boundary .shp or .geojson file")
	nameColumn := flag.String("name-column", "adm1_name", "boundary attribute holding the region name")
	flag.Parse()

	os.Exit(run(os.Stdout, *pointsPath, *boundaryPath, *nameColumn))
}

func run(w io.Writer, pointsPath, boundaryPath, nameColumn string) int {
	fmt.Fprintln(w, "=== GPS Points Data Check ===")
	fmt.Fprintln(w)

	loader := dataset.NewLoader(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	boundaries, err := loader.Boundaries(boundaryPath, nameColumn)
	if err != nil {
		return fatal(err)
	}
	points, stats, err := dataset.LoadPoints(pointsPath)
	if err != nil {
		return fatal(err)
	}

	phases := []*phase{
		checkCoordinates(stats),
		checkBoundaryNames(points, boundaries),
		checkCoverage(points, boundaries),
	}

	fmt.Fprintf(w, "Rows: %d read, %d valid, %d dropped\n", stats.Rows, stats.Valid, stats.Dropped)
	fmt.Fprintf(w, "Boundaries: %d\n", len(boundaries))
	for _, b := range boundaries {
		fmt.Fprintf(w, "  %s\n", b.Name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Points per region:")
	for _, c := range domain.Tally(points, domain.FieldRegion) {
		fmt.Fprintf(w, "  %-30s %d\n", c.Name, c.Count)
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors)+p.omitted)
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
		if p.omitted > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", p.omitted)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll checks passed.")
		return 0
	}
	fmt.Fprintln(w, "\nCheck FAILED.")
	return 1
}

// fatal reports a load failure. Configuration errors exit with 2 so scripts
// can tell a bad column name from an unreadable file.
func fatal(err error) int {
	fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
	var cfgErr *dataset.ConfigError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}

// checkCoordinates fails when no row survived the missing-coordinate filter.
func checkCoordinates(stats dataset.PointStats) *phase {
	p := &phase{name: "Point coordinates"}
	if stats.Valid == 0 {
		p.errorf("no rows with both latitude and longitude set (%d rows read)", stats.Rows)
	}
	return p
}

func checkBoundaryNames(points []domain.Point, boundaries []domain.Boundary) *phase {
	p := &phase{name: "Regions have boundaries"}

	names := make(map[string]struct{}, len(boundaries))
	for _, b := range boundaries {
		names[b.Name] = struct{}{}
	}
	for _, c := range domain.Tally(points, domain.FieldRegion) {
		if _, ok := names[c.Name]; !ok {
			p.errorf("region %q (%d points) has no boundary", c.Name, c.Count)
		}
	}
	return p
}

func checkCoverage(points []domain.Point, boundaries []domain.Boundary) *phase {
	p := &phase{name: "Points inside a boundary"}
	for _, pt := range points {
		if !insideAny(pt, boundaries) {
			p.errorf("%s / %s / %s / %s at (%.6f, %.6f) is outside every boundary",
				pt.Region, pt.Zone, pt.Woreda, pt.Kebele, pt.Lat, pt.Lon)
		}
	}
	return p
}

func insideAny(pt domain.Point, boundaries []domain.Boundary) bool {
	for _, b := range boundaries {
		if b.Contains(pt.Lat, pt.Lon) {
			return true
		}
	}
	return false
}
