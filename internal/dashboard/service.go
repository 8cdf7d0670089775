package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/couchcryptid/gps-points-dashboard/internal/observability"
)

// MapRenderer turns a filtered subset into a map page. It must always return
// a renderable document.
type MapRenderer interface {
	RenderOrFallback(boundaries []domain.Boundary, points []domain.Point) string
}

// ChartRenderer draws the summary series.
type ChartRenderer interface {
	Bar(w io.Writer, s domain.Series) error
	Pie(w io.Writer, s domain.Series) error
}

// SelectionRecorder receives one event per dropdown change.
type SelectionRecorder interface {
	RecordSelection(ctx context.Context, event domain.SelectionEvent) error
}

// Options are the dropdown contents for a selection.
type Options struct {
	Regions []string `json:"regions"`
	Zones   []string `json:"zones"`
	Woredas []string `json:"woredas"`
}

// View is everything the dashboard page shows for one selection.
type View struct {
	Options
	Selection domain.Selection
	Summary   domain.Summary
}

// Service runs the per-request pipeline: normalize the selection, filter the
// dataset, then aggregate and render. It holds no mutable state.
type Service struct {
	data     *domain.Dataset
	maps     MapRenderer
	charts   ChartRenderer
	recorder SelectionRecorder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service over data. recorder may be nil to disable selection events.
func New(data *domain.Dataset, maps MapRenderer, charts ChartRenderer, recorder SelectionRecorder, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		data:     data,
		maps:     maps,
		charts:   charts,
		recorder: recorder,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness reports an error while the dataset has no points to show.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.data == nil || s.data.Len() == 0 {
		return errors.New("dataset contains no valid points")
	}
	return nil
}

// View applies the cascade reset for the changed control and builds the full page state.
func (s *Service) View(ctx context.Context, sel domain.Selection, changed domain.Level) View {
	sel = s.data.Normalize(sel, changed)
	subset := s.filter(sel)
	summary := domain.Summarize(subset, sel)

	s.logger.Debug("dashboard rendered",
		"region", sel.Region, "zone", sel.Zone, "woreda", sel.Woreda,
		"filtered_points", summary.Total)

	if changed != domain.LevelNone {
		s.record(ctx, domain.NewSelectionEvent(sel, changed, summary.Total))
	}

	return View{
		Options:   s.options(sel),
		Selection: sel,
		Summary:   summary,
	}
}

// Options returns the dropdown contents for sel after dropping stale values.
func (s *Service) Options(sel domain.Selection) Options {
	return s.options(s.data.Normalize(sel, domain.LevelNone))
}

func (s *Service) options(sel domain.Selection) Options {
	return Options{
		Regions: s.data.Regions(),
		Zones:   s.data.ZonesFor(sel.Region),
		Woredas: s.data.WoredasFor(sel.Region, sel.Zone),
	}
}

// Summary returns the counts for sel.
func (s *Service) Summary(sel domain.Selection) domain.Summary {
	sel = s.data.Normalize(sel, domain.LevelNone)
	return domain.Summarize(s.filter(sel), sel)
}

// Map returns the map page for sel. It never fails.
func (s *Service) Map(sel domain.Selection) string {
	sel = s.data.Normalize(sel, domain.LevelNone)
	return s.maps.RenderOrFallback(s.data.Boundaries(), s.filter(sel))
}

// BarChart writes the bar chart for sel.
func (s *Service) BarChart(w io.Writer, sel domain.Selection) error {
	if err := s.charts.Bar(w, s.Summary(sel).Bar); err != nil {
		s.metrics.ChartRenderErrors.WithLabelValues("bar").Inc()
		return err
	}
	return nil
}

// PieChart writes the pie chart for sel.
func (s *Service) PieChart(w io.Writer, sel domain.Selection) error {
	if err := s.charts.Pie(w, s.Summary(sel).Pie); err != nil {
		s.metrics.ChartRenderErrors.WithLabelValues("pie").Inc()
		return err
	}
	return nil
}

func (s *Service) filter(sel domain.Selection) []domain.Point {
	start := time.Now()
	subset := s.data.Filter(sel)
	s.metrics.FilterDuration.Observe(time.Since(start).Seconds())
	s.metrics.FilteredPoints.Observe(float64(len(subset)))
	return subset
}

// record hands the event to the sink. Failures are logged and never reach the user.
func (s *Service) record(ctx context.Context, event domain.SelectionEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSelection(ctx, event); err != nil {
		s.metrics.SelectionEventErrors.Inc()
		s.logger.Warn("selection event not recorded", "error", err, "event_id", event.ID)
	}
}
