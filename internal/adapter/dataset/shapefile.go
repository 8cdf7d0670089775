package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
)

// readShapefile reads polygon records and the nameColumn attribute from an
// ESRI shapefile. Non-polygon records are returned in skipped, by record number.
func readShapefile(path, nameColumn string) (boundaries []domain.Boundary, skipped []int, err error) {
	ref, err := shapefileCRS(path)
	if err != nil {
		return nil, nil, &ConfigError{Path: path, Detail: err.Error()}
	}

	// Reader.Fields reports no columns, not an error, when the table is missing.
	dbf := strings.TrimSuffix(path, "shp") + "dbf"
	if _, err := os.Stat(dbf); err != nil {
		return nil, nil, &ConfigError{Path: path, Detail: fmt.Sprintf("attribute table %s is not readable: %v", filepath.Base(dbf), err)}
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open boundary shapefile: %w", err)
	}
	defer r.Close()

	fields := r.Fields()
	columns := make([]string, len(fields))
	nameIdx := -1
	for i, f := range fields {
		columns[i] = f.String()
		if columns[i] == nameColumn {
			nameIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, nil, missingColumnError(path, []string{nameColumn}, columns)
	}

	for r.Next() {
		n, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped = append(skipped, n)
			continue
		}
		g, err := shapePolygon(poly)
		if err != nil {
			return nil, nil, fmt.Errorf("shape %d: %w", n, err)
		}
		if g, err = ref.toGeographic(g); err != nil {
			return nil, nil, fmt.Errorf("shape %d: %w", n, err)
		}
		boundaries = append(boundaries, domain.Boundary{
			Name:     attributeString(r.ReadAttribute(n, nameIdx)),
			Geometry: g,
		})
	}
	if err := r.Err(); err != nil {
		return nil, nil, fmt.Errorf("read boundary shapefile: %w", err)
	}
	return boundaries, skipped, nil
}

// attributeString strips the NUL and space padding of a DBF character field.
func attributeString(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00 "))
}

// shapefileCRS reads the sibling .prj. A missing .prj means geographic.
func shapefileCRS(path string) (crs, error) {
	prj := strings.TrimSuffix(path, ".shp") + ".prj"
	data, err := os.ReadFile(prj)
	if errors.Is(err, fs.ErrNotExist) {
		return crsGeographic, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", prj, err)
	}
	return crsFromWKT(string(data))
}

// shapePolygon converts a shapefile polygon into a go-geom geometry.
// Shapefile outer rings are clockwise and holes counter-clockwise; each
// clockwise part starts a new polygon and holes attach to the latest one.
func shapePolygon(p *shp.Polygon) (geom.T, error) {
	var polys [][][]geom.Coord
	for i := range p.Parts {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if start >= end || end > len(p.Points) {
			return nil, fmt.Errorf("part %d has invalid bounds [%d, %d)", i, start, end)
		}

		ring := make([]geom.Coord, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, geom.Coord{pt.X, pt.Y})
		}

		if signedArea(ring) <= 0 || len(polys) == 0 {
			polys = append(polys, [][]geom.Coord{ring})
			continue
		}
		last := len(polys) - 1
		polys[last] = append(polys[last], ring)
	}

	switch len(polys) {
	case 0:
		return nil, errors.New("polygon has no parts")
	case 1:
		return geom.NewPolygon(geom.XY).SetCoords(polys[0])
	default:
		return geom.NewMultiPolygon(geom.XY).SetCoords(polys)
	}
}

// signedArea is the shoelace sum; negative for clockwise rings.
func signedArea(ring []geom.Coord) float64 {
	var sum float64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
	}
	return sum / 2
}
