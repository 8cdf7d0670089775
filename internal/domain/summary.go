package domain

import (
	"sort"
	"strings"
)

// Field is an administrative attribute of a Point that points can be grouped by.
type Field int

const (
	FieldRegion Field = iota
	FieldZone
	FieldWoreda
	FieldKebele
)

// Value returns the attribute of p named by f.
func (f Field) Value(p Point) string {
	switch f {
	case FieldRegion:
		return p.Region
	case FieldZone:
		return p.Zone
	case FieldWoreda:
		return p.Woreda
	case FieldKebele:
		return p.Kebele
	default:
		return ""
	}
}

// String returns the display label, e.g. "Woreda".
func (f Field) String() string {
	switch f {
	case FieldRegion:
		return "Region"
	case FieldZone:
		return "Zone"
	case FieldWoreda:
		return "Woreda"
	case FieldKebele:
		return "Kebele"
	default:
		return "Unknown"
	}
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(f.String())), nil
}

// Granularity is the drill-down state of a chart.
//
//	sibling == All  -> Coarse
//	sibling != All  -> Fine
//
// There are no other transitions: the state is a function of the sibling
// selection alone.
type Granularity int

const (
	Coarse Granularity = iota
	Fine
)

// GranularityFor returns Fine once the sibling selection is concrete.
func GranularityFor(sibling string) Granularity {
	if IsWildcard(sibling) {
		return Coarse
	}
	return Fine
}

func (g Granularity) String() string {
	if g == Fine {
		return "fine"
	}
	return "coarse"
}

func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Axis maps each granularity of a chart to the field it groups by.
type Axis struct {
	Coarse Field
	Fine   Field
}

// Field returns the grouping field for g.
func (a Axis) Field(g Granularity) Field {
	if g == Fine {
		return a.Fine
	}
	return a.Coarse
}

var (
	// BarAxis groups the bar chart by woreda, then by kebele once a woreda is chosen.
	BarAxis = Axis{Coarse: FieldWoreda, Fine: FieldKebele}
	// PieAxis groups the pie chart by zone, then by kebele once a zone is chosen.
	PieAxis = Axis{Coarse: FieldZone, Fine: FieldKebele}
)

// Count is one row of a frequency tally.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Series is a chart's grouped counts.
type Series struct {
	GroupBy     Field       `json:"group_by"`
	Granularity Granularity `json:"granularity"`
	Counts      []Count     `json:"counts"`
}

// Summary is everything the counts, table and charts show for one selection.
type Summary struct {
	Selection Selection `json:"selection"`
	Total     int       `json:"total"`
	ByRegion  []Count   `json:"by_region"`
	Bar       Series    `json:"bar"`
	Pie       Series    `json:"pie"`
}

// Summarize aggregates a filtered subset. sel only decides chart granularity;
// it is not reapplied to subset.
func Summarize(subset []Point, sel Selection) Summary {
	return Summary{
		Selection: sel,
		Total:     len(subset),
		ByRegion:  Tally(subset, FieldRegion),
		Bar:       seriesFor(subset, BarAxis, GranularityFor(sel.Woreda)),
		Pie:       seriesFor(subset, PieAxis, GranularityFor(sel.Zone)),
	}
}

func seriesFor(subset []Point, axis Axis, g Granularity) Series {
	f := axis.Field(g)
	return Series{GroupBy: f, Granularity: g, Counts: Tally(subset, f)}
}

// Tally counts points per value of f, largest first. Ties keep the order in
// which values were first seen. Empty values are skipped.
func Tally(points []Point, f Field) []Count {
	index := make(map[string]int)
	counts := make([]Count, 0)
	for _, p := range points {
		v := f.Value(p)
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Name: v, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
