package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRegions(t *testing.T) {
	assert.Equal(t, []string{All, "Amhara", "Oromia"}, Regions(samplePoints()))
}

func TestZonesFor(t *testing.T) {
	points := samplePoints()

	tests := []struct {
		name   string
		region string
		want   []string
	}{
		{"all regions", All, []string{All, "Arsi", "Bale", "West Gojam"}},
		{"empty region is wildcard", "", []string{All, "Arsi", "Bale", "West Gojam"}},
		{"oromia", "Oromia", []string{All, "Arsi", "Bale"}},
		{"null zone excluded", "Amhara", []string{All, "West Gojam"}},
		{"unknown region", "Somali", []string{All}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ZonesFor(points, tt.region)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ZonesFor(%q) mismatch (-want +got):\n%s", tt.region, diff)
			}
		})
	}
}

func TestZonesFor_AllFirstNoDuplicates(t *testing.T) {
	for _, region := range Regions(samplePoints()) {
		zones := ZonesFor(samplePoints(), region)
		assert.Equal(t, All, zones[0])

		seen := make(map[string]bool)
		for _, z := range zones {
			assert.False(t, seen[z], "duplicate zone %q for region %q", z, region)
			seen[z] = true
		}
	}
}

func TestWoredasFor(t *testing.T) {
	points := samplePoints()

	assert.Equal(t, []string{All, "Hetosa", "Tiyo"}, WoredasFor(points, "Oromia", "Arsi"))
	assert.Equal(t, []string{All, "Hetosa", "Sinana", "Tiyo"}, WoredasFor(points, "Oromia", All))
	assert.Equal(t, []string{All, "Bure", "Dangila", "Hetosa", "Sinana", "Tiyo"}, WoredasFor(points, All, All))
	assert.Equal(t, []string{All}, WoredasFor(points, "Amhara", "Arsi"))
}

func TestResolve(t *testing.T) {
	full := Selection{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo"}

	tests := []struct {
		name    string
		changed Level
		want    Selection
	}{
		{"region change resets zone and woreda", LevelRegion, Selection{Region: "Oromia", Zone: All, Woreda: All}},
		{"zone change resets woreda", LevelZone, Selection{Region: "Oromia", Zone: "Arsi", Woreda: All}},
		{"woreda change keeps everything", LevelWoreda, full},
		{"no change keeps everything", LevelNone, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(full, tt.changed))
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelRegion, ParseLevel("region"))
	assert.Equal(t, LevelZone, ParseLevel(" Zone "))
	assert.Equal(t, LevelWoreda, ParseLevel("WOREDA"))
	assert.Equal(t, LevelNone, ParseLevel("kebele"))
	assert.Equal(t, LevelNone, ParseLevel(""))
	assert.Equal(t, "zone", LevelZone.String())
}

func TestDatasetNormalize(t *testing.T) {
	ds := NewDataset(samplePoints(), nil)

	tests := []struct {
		name    string
		sel     Selection
		changed Level
		want    Selection
	}{
		{
			name: "empty becomes all wildcards",
			sel:  Selection{},
			want: Selection{Region: All, Zone: All, Woreda: All},
		},
		{
			name:    "narrowing region resets downstream",
			sel:     Selection{Region: "Amhara", Zone: "Arsi", Woreda: "Tiyo"},
			changed: LevelRegion,
			want:    Selection{Region: "Amhara", Zone: All, Woreda: All},
		},
		{
			name: "stale zone is dropped even without a change marker",
			sel:  Selection{Region: "Amhara", Zone: "Arsi", Woreda: All},
			want: Selection{Region: "Amhara", Zone: All, Woreda: All},
		},
		{
			name: "stale woreda is dropped",
			sel:  Selection{Region: "Oromia", Zone: "Bale", Woreda: "Tiyo"},
			want: Selection{Region: "Oromia", Zone: "Bale", Woreda: All},
		},
		{
			name: "unknown region resets everything",
			sel:  Selection{Region: "Atlantis", Zone: "Arsi", Woreda: "Tiyo"},
			want: Selection{Region: All, Zone: All, Woreda: All},
		},
		{
			name:    "valid drill-down is kept",
			sel:     Selection{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo"},
			changed: LevelWoreda,
			want:    Selection{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ds.Normalize(tt.sel, tt.changed))
		})
	}
}

func TestNewDataset_CopiesInput(t *testing.T) {
	points := samplePoints()
	ds := NewDataset(points, nil)

	points[0].Region = "mutated"

	assert.Equal(t, "Oromia", ds.Points()[0].Region)
	assert.Equal(t, 8, ds.Len())
	assert.Equal(t, []string{All, "Amhara", "Oromia"}, ds.Regions())
}

func TestPointHasCoordinates(t *testing.T) {
	assert.True(t, Point{Lat: 9, Lon: 38}.HasCoordinates())
	assert.False(t, Point{Lat: 0, Lon: 38}.HasCoordinates())
	assert.False(t, Point{Lat: 9, Lon: 0}.HasCoordinates())
}
