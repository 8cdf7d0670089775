package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
)

// Stats summarises a dataset load for startup logging and metrics.
type Stats struct {
	Points            PointStats
	Boundaries        int
	SkippedGeometries int
}

// Loader reads the point and boundary files once at startup.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader that reports skipped input through logger.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads both files and builds the immutable dataset. Boundaries are read
// first so a misconfigured name column fails before the larger CSV is parsed.
func (l *Loader) Load(pointsPath, boundaryPath, nameColumn string) (*domain.Dataset, Stats, error) {
	var stats Stats

	boundaries, skipped, err := l.readBoundaries(boundaryPath, nameColumn)
	if err != nil {
		return nil, stats, err
	}
	stats.Boundaries = len(boundaries)
	stats.SkippedGeometries = len(skipped)

	points, pstats, err := LoadPoints(pointsPath)
	if err != nil {
		return nil, stats, err
	}
	stats.Points = pstats

	return domain.NewDataset(points, boundaries), stats, nil
}

// Boundaries reads a .shp or .geojson boundary file and returns its polygons
// in EPSG:4326.
func (l *Loader) Boundaries(path, nameColumn string) ([]domain.Boundary, error) {
	boundaries, _, err := l.readBoundaries(path, nameColumn)
	return boundaries, err
}

func (l *Loader) readBoundaries(path, nameColumn string) ([]domain.Boundary, []int, error) {
	var (
		boundaries []domain.Boundary
		skipped    []int
		err        error
	)

	switch ext := filepath.Ext(path); strings.ToLower(ext) {
	case ".shp":
		// go-shp always opens the lowercase .shp/.dbf siblings.
		if ext != ".shp" {
			return nil, nil, &ConfigError{Path: path, Detail: fmt.Sprintf("shapefile extension must be lowercase .shp, got %q", ext)}
		}
		boundaries, skipped, err = readShapefile(path, nameColumn)
	case ".geojson", ".json":
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open boundary file: %w", err)
		}
		boundaries, skipped, err = DecodeGeoJSON(data, path, nameColumn)
	default:
		return nil, nil, &ConfigError{Path: path, Detail: fmt.Sprintf("unsupported boundary file type %q", ext)}
	}
	if err != nil {
		return nil, nil, err
	}

	if len(skipped) > 0 {
		l.logger.Warn("skipped non-polygon boundary features", "path", path, "count", len(skipped), "indexes", skipped)
	}
	return boundaries, skipped, nil
}
