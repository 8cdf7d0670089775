package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranularityFor(t *testing.T) {
	assert.Equal(t, Coarse, GranularityFor(All))
	assert.Equal(t, Coarse, GranularityFor(""))
	assert.Equal(t, Fine, GranularityFor("Tiyo"))
}

func TestAxisField(t *testing.T) {
	assert.Equal(t, FieldWoreda, BarAxis.Field(Coarse))
	assert.Equal(t, FieldKebele, BarAxis.Field(Fine))
	assert.Equal(t, FieldZone, PieAxis.Field(Coarse))
	assert.Equal(t, FieldKebele, PieAxis.Field(Fine))
}

func TestTally_OrderAndTies(t *testing.T) {
	points := []Point{
		{Woreda: "B"}, {Woreda: "A"}, {Woreda: "C"}, {Woreda: "A"}, {Woreda: "B"}, {Woreda: ""}, {Woreda: "D"},
	}

	got := Tally(points, FieldWoreda)

	assert.Equal(t, []Count{
		{Name: "B", Count: 2},
		{Name: "A", Count: 2},
		{Name: "C", Count: 1},
		{Name: "D", Count: 1},
	}, got)
}

func TestSummarize_RegionDrillDownOnly(t *testing.T) {
	sel := Selection{Region: "Oromia", Zone: All, Woreda: All}
	subset := Filter(samplePoints(), sel)

	s := Summarize(subset, sel)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, []Count{{Name: "Oromia", Count: 5}}, s.ByRegion)

	assert.Equal(t, FieldWoreda, s.Bar.GroupBy)
	assert.Equal(t, Coarse, s.Bar.Granularity)
	assert.Equal(t, []Count{{Name: "Tiyo", Count: 3}, {Name: "Hetosa", Count: 1}, {Name: "Sinana", Count: 1}}, s.Bar.Counts)

	assert.Equal(t, FieldZone, s.Pie.GroupBy)
	assert.Equal(t, Coarse, s.Pie.Granularity)
	assert.Equal(t, []Count{{Name: "Arsi", Count: 4}, {Name: "Bale", Count: 1}}, s.Pie.Counts)
}

func TestSummarize_FullDrillDownSwitchesToKebele(t *testing.T) {
	sel := Selection{Region: "Oromia", Zone: "Arsi", Woreda: "Specific Woreda"}
	subset := Filter(samplePoints(), Selection{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo"})

	s := Summarize(subset, sel)

	assert.Equal(t, FieldKebele, s.Bar.GroupBy)
	assert.Equal(t, Fine, s.Bar.Granularity)
	assert.Equal(t, FieldKebele, s.Pie.GroupBy)
	assert.Equal(t, Fine, s.Pie.Granularity)
	assert.Equal(t, []Count{{Name: "K01", Count: 2}, {Name: "K02", Count: 1}}, s.Bar.Counts)
}

func TestSummarize_ZoneOnlySwitchesPie(t *testing.T) {
	sel := Selection{Region: "Oromia", Zone: "Arsi", Woreda: All}
	s := Summarize(Filter(samplePoints(), sel), sel)

	assert.Equal(t, FieldWoreda, s.Bar.GroupBy)
	assert.Equal(t, FieldKebele, s.Pie.GroupBy)
}

func TestSummarize_Empty(t *testing.T) {
	sel := Selection{Region: "Amhara", Zone: "Arsi", Woreda: All}
	s := Summarize(Filter(samplePoints(), sel), sel)

	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByRegion)
	assert.Empty(t, s.Bar.Counts)
	assert.Empty(t, s.Pie.Counts)
}

func TestSummarize_RegionTableSumsToTotal(t *testing.T) {
	for _, region := range Regions(samplePoints()) {
		sel := Selection{Region: region}
		s := Summarize(Filter(samplePoints(), sel), sel)

		sum := 0
		for _, c := range s.ByRegion {
			sum += c.Count
		}
		assert.Equal(t, s.Total, sum, "region %q", region)
	}
}

func TestSummary_JSONLabels(t *testing.T) {
	sel := Selection{Region: "Oromia", Zone: "Arsi", Woreda: All}
	data, err := json.Marshal(Summarize(Filter(samplePoints(), sel), sel))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"group_by":"woreda"`)
	assert.Contains(t, string(data), `"group_by":"kebele"`)
	assert.Contains(t, string(data), `"granularity":"fine"`)
}

func TestNewSelectionEvent(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	sel := Selection{Region: "Oromia", Zone: All, Woreda: All}
	ev := NewSelectionEvent(sel, LevelRegion, 5)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "region", ev.Changed)
	assert.Equal(t, sel, ev.Selection)
	assert.Equal(t, 5, ev.MatchedPoints)
	assert.Equal(t, fixed, ev.OccurredAt)
	assert.NotEqual(t, ev.ID, NewSelectionEvent(sel, LevelRegion, 5).ID)
}
