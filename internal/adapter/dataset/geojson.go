package dataset

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// namedCRS is the legacy GeoJSON "crs" member, which go-geom does not decode.
type namedCRS struct {
	CRS *struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

// DecodeGeoJSON parses a boundary FeatureCollection. Features whose geometry is
// not a polygon or multipolygon are returned in skipped, by index.
func DecodeGeoJSON(data []byte, path, nameColumn string) (boundaries []domain.Boundary, skipped []int, err error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, nil, fmt.Errorf("decode boundary geojson: %w", err)
	}

	var head namedCRS
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, nil, fmt.Errorf("decode boundary geojson crs: %w", err)
	}
	crsName := ""
	if head.CRS != nil {
		crsName = head.CRS.Properties.Name
	}
	ref, err := crsFromName(crsName)
	if err != nil {
		return nil, nil, &ConfigError{Path: path, Detail: err.Error()}
	}

	if columns := propertyColumns(fc.Features); !containsColumn(columns, nameColumn) {
		return nil, nil, missingColumnError(path, []string{nameColumn}, columns)
	}

	for i, f := range fc.Features {
		if !isPolygonal(f.Geometry) {
			skipped = append(skipped, i)
			continue
		}
		g, err := ref.toGeographic(f.Geometry)
		if err != nil {
			return nil, nil, fmt.Errorf("feature %d: %w", i, err)
		}
		boundaries = append(boundaries, domain.Boundary{
			Name:     propertyString(f.Properties[nameColumn]),
			Geometry: g,
		})
	}
	return boundaries, skipped, nil
}

func isPolygonal(g geom.T) bool {
	switch g.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
		return true
	}
	return false
}

// propertyColumns returns the union of property keys, sorted.
func propertyColumns(features []*geojson.Feature) []string {
	seen := make(map[string]struct{})
	for _, f := range features {
		for k := range f.Properties {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

func propertyString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
