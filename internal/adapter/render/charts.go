package render

import (
	"fmt"
	"io"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 640
	chartHeight = 400
)

// BarTitle is the bar chart heading for s, e.g. "Points per Woreda".
func BarTitle(s domain.Series) string {
	return "Points per " + s.GroupBy.String()
}

// PieTitle is the pie chart heading for s, e.g. "Distribution by Zone".
func PieTitle(s domain.Series) string {
	return "Distribution by " + s.GroupBy.String()
}

// ChartRenderer draws the summary series as SVG.
type ChartRenderer struct {
	width  int
	height int
}

// NewChartRenderer returns a renderer producing 640x400 charts.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{width: chartWidth, height: chartHeight}
}

// Bar writes a bar chart of s. An empty series produces a placeholder.
func (c *ChartRenderer) Bar(w io.Writer, s domain.Series) error {
	if len(s.Counts) == 0 {
		return c.empty(w, BarTitle(s))
	}

	bars := make([]chart.Value, len(s.Counts))
	maxCount := 0
	for i, n := range s.Counts {
		bars[i] = chart.Value{Label: n.Name, Value: float64(n.Count)}
		maxCount = max(maxCount, n.Count)
	}

	bc := chart.BarChart{
		Title:      BarTitle(s),
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 60}},
		Width:      c.width,
		Height:     c.height,
		BarWidth:   barWidth(c.width, len(bars)),
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// Pie writes a pie chart of s. An empty series produces a placeholder.
func (c *ChartRenderer) Pie(w io.Writer, s domain.Series) error {
	if len(s.Counts) == 0 {
		return c.empty(w, PieTitle(s))
	}

	values := make([]chart.Value, len(s.Counts))
	for i, n := range s.Counts {
		values[i] = chart.Value{Label: fmt.Sprintf("%s (%d)", n.Name, n.Count), Value: float64(n.Count)}
	}

	pc := chart.PieChart{
		Title:  PieTitle(s),
		Width:  c.width,
		Height: c.height,
		Values: values,
	}
	if err := pc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// empty draws a titled "No data" canvas; go-chart refuses series with no values.
func (c *ChartRenderer) empty(w io.Writer, title string) error {
	r, err := chart.SVG(c.width, c.height)
	if err != nil {
		return fmt.Errorf("create svg canvas: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}

	r.SetFont(font)
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(14)
	r.Text(title, 20, 30)
	r.SetFontColor(drawing.ColorFromHex("777777"))
	r.SetFontSize(12)
	r.Text("No data", c.width/2-25, c.height/2)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("write empty chart: %w", err)
	}
	return nil
}

func barWidth(canvas, bars int) int {
	const spacing = 10
	w := (canvas - 80) / bars
	w -= spacing
	return max(4, min(w, 50))
}
