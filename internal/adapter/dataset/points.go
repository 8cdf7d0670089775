package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source column names in the survey export.
const (
	colRegion    = "Region"
	colZone      = "Zone"
	colWoreda    = "Woreda"
	colKebele    = "Kebele"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

var pointColumns = []string{colRegion, colZone, colWoreda, colKebele, colLatitude, colLongitude}

// PointStats describes what the point loader kept and dropped.
type PointStats struct {
	Rows    int
	Valid   int
	Dropped int
}

// ReadPoints parses the survey CSV from r. A leading UTF-8 BOM is ignored.
// Rows without usable coordinates (0, empty, or not a finite number) are
// dropped and counted. name is used in error messages.
func ReadPoints(r io.Reader, name string) ([]domain.Point, PointStats, error) {
	var stats PointStats

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, &ConfigError{Path: name, Detail: "file is empty"}
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read points header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		colIdx[header[i]] = i
	}
	var missing []string
	for _, c := range pointColumns {
		if _, ok := colIdx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, stats, missingColumnError(name, missing, header)
	}

	get := func(row []string, col string) string {
		idx := colIdx[col]
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	points := make([]domain.Point, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read points row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++

		p := domain.Point{
			Region: get(row, colRegion),
			Zone:   get(row, colZone),
			Woreda: get(row, colWoreda),
			Kebele: get(row, colKebele),
			Lat:    parseCoordinate(get(row, colLatitude)),
			Lon:    parseCoordinate(get(row, colLongitude)),
		}
		if !p.HasCoordinates() {
			stats.Dropped++
			continue
		}
		points = append(points, p)
	}
	stats.Valid = len(points)

	return points, stats, nil
}

// LoadPoints reads the survey CSV at path.
func LoadPoints(path string) ([]domain.Point, PointStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, PointStats{}, fmt.Errorf("open points file: %w", err)
	}
	defer f.Close()

	return ReadPoints(f, path)
}

// parseCoordinate returns 0, the missing-value marker, for anything that is
// not a finite number.
func parseCoordinate(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
