package domain

import (
	"slices"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Point is a single surveyed GPS fix with its administrative names.
type Point struct {
	Region string  `json:"region"`
	Zone   string  `json:"zone"`
	Woreda string  `json:"woreda"`
	Kebele string  `json:"kebele"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// HasCoordinates reports whether both coordinates are present. Zero is the
// export's marker for a missing value.
func (p Point) HasCoordinates() bool {
	return p.Lat != 0 && p.Lon != 0
}

// Boundary is an administrative outline used for the map overlay.
// Geometry is a *geom.Polygon or *geom.MultiPolygon in EPSG:4326.
type Boundary struct {
	Name     string
	Geometry geom.T
}

// Dataset is the immutable data context shared by every request. It is built
// once at startup and never mutated, so concurrent reads need no locking.
type Dataset struct {
	points     []Point
	boundaries []Boundary
	regions    []string
}

// NewDataset copies its inputs so later changes by the caller cannot leak in.
func NewDataset(points []Point, boundaries []Boundary) *Dataset {
	p := slices.Clone(points)
	return &Dataset{
		points:     p,
		boundaries: slices.Clone(boundaries),
		regions:    Regions(p),
	}
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// Points returns a copy of all points.
func (d *Dataset) Points() []Point { return slices.Clone(d.points) }

// Boundaries returns a copy of the boundary list. Geometries are shared and
// must be treated as read-only.
func (d *Dataset) Boundaries() []Boundary { return slices.Clone(d.boundaries) }

// Regions returns the region options, [All] first.
func (d *Dataset) Regions() []string { return slices.Clone(d.regions) }

// Filter returns the points matching sel.
func (d *Dataset) Filter(sel Selection) []Point { return Filter(d.points, sel) }

// ZonesFor returns the zone options for a region.
func (d *Dataset) ZonesFor(region string) []string { return ZonesFor(d.points, region) }

// WoredasFor returns the woreda options for a region and zone.
func (d *Dataset) WoredasFor(region, zone string) []string {
	return WoredasFor(d.points, region, zone)
}

// Normalize applies the cascade reset for the changed control, then drops any
// value that is no longer offered by its option list. The result never
// references an option the dropdowns would not show.
func (d *Dataset) Normalize(sel Selection, changed Level) Selection {
	sel = Resolve(sel.withWildcards(), changed)

	if !slices.Contains(d.regions, sel.Region) {
		sel = Selection{Region: All, Zone: All, Woreda: All}
	}
	if !slices.Contains(d.ZonesFor(sel.Region), sel.Zone) {
		sel.Zone, sel.Woreda = All, All
	}
	if !slices.Contains(d.WoredasFor(sel.Region, sel.Zone), sel.Woreda) {
		sel.Woreda = All
	}
	return sel
}

// Contains reports whether the coordinate lies inside the boundary, holes excluded.
func (b Boundary) Contains(lat, lon float64) bool {
	if b.Geometry == nil {
		return false
	}
	c := geom.Coord{lon, lat}
	if !b.Geometry.Bounds().OverlapsPoint(geom.XY, c) {
		return false
	}

	switch g := b.Geometry.(type) {
	case *geom.Polygon:
		return polygonContains(g, c)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			if polygonContains(g.Polygon(i), c) {
				return true
			}
		}
	}
	return false
}

func polygonContains(p *geom.Polygon, c geom.Coord) bool {
	if p.NumLinearRings() == 0 || !xy.IsPointInRing(p.Layout(), c, p.LinearRing(0).FlatCoords()) {
		return false
	}
	for i := 1; i < p.NumLinearRings(); i++ {
		if xy.IsPointInRing(p.Layout(), c, p.LinearRing(i).FlatCoords()) {
			return false
		}
	}
	return true
}
