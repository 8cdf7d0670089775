package domain

import "sort"

// Filter returns the points matching every concrete field of sel, in input
// order. The result is always a new slice; an empty match is not an error.
func Filter(points []Point, sel Selection) []Point {
	out := make([]Point, 0)
	for _, p := range points {
		if sel.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Regions returns All followed by the sorted distinct non-empty regions.
func Regions(points []Point) []string {
	return options(points, FieldRegion)
}

// ZonesFor returns All followed by the sorted distinct zones among points in region.
func ZonesFor(points []Point, region string) []string {
	return options(Filter(points, Selection{Region: region}), FieldZone)
}

// WoredasFor returns All followed by the sorted distinct woredas among points
// in region and zone.
func WoredasFor(points []Point, region, zone string) []string {
	return options(Filter(points, Selection{Region: region, Zone: zone}), FieldWoreda)
}

func options(points []Point, f Field) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range points {
		v := f.Value(p)
		if v == "" || v == All {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{All}, values...)
}
