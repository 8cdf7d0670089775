package dataset

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/twpayne/go-geom"
)

// crs is the coordinate reference system of a boundary file. Only the two
// systems boundary exports actually come in are supported.
type crs int

const (
	crsGeographic  crs = iota // EPSG:4326 / OGC:CRS84, lon/lat degrees
	crsWebMercator            // EPSG:3857, metres
)

// crsFromName parses a GeoJSON "crs" name such as "urn:ogc:def:crs:EPSG::3857".
func crsFromName(name string) (crs, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch {
	case n == "", strings.HasSuffix(n, "CRS84"), strings.HasSuffix(n, ":4326"):
		return crsGeographic, nil
	case strings.HasSuffix(n, ":3857"), strings.HasSuffix(n, ":900913"), strings.HasSuffix(n, ":3785"):
		return crsWebMercator, nil
	}
	return 0, fmt.Errorf("unsupported coordinate reference system %q", name)
}

// crsFromWKT classifies the ESRI WKT found in a shapefile's .prj.
// An empty string means no .prj and is taken as geographic.
func crsFromWKT(wkt string) (crs, error) {
	w := strings.ToUpper(strings.TrimSpace(wkt))
	switch {
	case w == "", strings.HasPrefix(w, "GEOGCS"):
		return crsGeographic, nil
	case strings.HasPrefix(w, "PROJCS") && isWebMercatorWKT(w):
		return crsWebMercator, nil
	}
	head, _, _ := strings.Cut(wkt, ",")
	return 0, fmt.Errorf("unsupported projection %s", head)
}

func isWebMercatorWKT(w string) bool {
	for _, marker := range []string{"MERCATOR_AUXILIARY_SPHERE", "PSEUDO-MERCATOR", "PSEUDO_MERCATOR", "POPULAR VISUALISATION", "3857"} {
		if strings.Contains(w, marker) {
			return true
		}
	}
	return false
}

// earthRadius is the WGS84 semi-major axis used by spherical Web Mercator.
const earthRadius = 6378137.0

func webMercatorToLonLat(x, y float64) (lon, lat float64) {
	lon = x / earthRadius * 180 / math.Pi
	lat = (2*math.Atan(math.Exp(y/earthRadius)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}

// toGeographic returns g in EPSG:4326. Geographic input is returned as is.
func (c crs) toGeographic(g geom.T) (geom.T, error) {
	if c == crsGeographic {
		return g, nil
	}

	flat := slices.Clone(g.FlatCoords())
	stride := g.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		flat[i], flat[i+1] = webMercatorToLonLat(flat[i], flat[i+1])
	}

	switch t := g.(type) {
	case *geom.Polygon:
		return geom.NewPolygonFlat(t.Layout(), flat, t.Ends()), nil
	case *geom.MultiPolygon:
		return geom.NewMultiPolygonFlat(t.Layout(), flat, t.Endss()), nil
	}
	return nil, fmt.Errorf("cannot reproject geometry of type %T", g)
}
