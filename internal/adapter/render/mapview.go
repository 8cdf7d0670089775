package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"log/slog"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/couchcryptid/gps-points-dashboard/internal/observability"
	"github.com/twpayne/go-geom/encoding/geojson"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Home view of the map: central Ethiopia.
const (
	DefaultLat  = 9.0
	DefaultLon  = 38.5
	DefaultZoom = 6
)

// TileLayer is a base map offered in the layer control.
type TileLayer struct {
	Name        string
	URL         string
	Attribution string
}

var (
	streetLayer = TileLayer{
		Name:        "OpenStreetMap",
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
	}
	esriSatelliteLayer = TileLayer{
		Name:        "Satellite",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Esri",
	}
)

func mapboxSatelliteLayer(token string) TileLayer {
	return TileLayer{
		Name:        "Satellite",
		URL:         "https://api.mapbox.com/styles/v1/mapbox/satellite-v9/tiles/{z}/{x}/{y}?access_token=" + token,
		Attribution: "&copy; Mapbox &copy; OpenStreetMap",
	}
}

type latLon struct {
	Lat float64
	Lon float64
}

type mapMarker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup"`
}

type mapPage struct {
	Title       string
	Center      latLon
	Zoom        int
	Street      TileLayer
	Satellite   TileLayer
	Boundaries  template.JS
	Markers     template.JS
	ErrorMarker *mapMarker
}

// MapRenderer renders a filtered subset as a standalone Leaflet page.
type MapRenderer struct {
	tmpl      *template.Template
	satellite TileLayer
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewMapRenderer uses Mapbox satellite tiles when mapboxToken is set and Esri
// World Imagery otherwise.
func NewMapRenderer(mapboxToken string, logger *slog.Logger, metrics *observability.Metrics) *MapRenderer {
	satellite := esriSatelliteLayer
	if mapboxToken != "" {
		satellite = mapboxSatelliteLayer(mapboxToken)
	}
	return &MapRenderer{
		tmpl:      template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl")),
		satellite: satellite,
		logger:    logger,
		metrics:   metrics,
	}
}

// Render builds the map for points over the boundary overlay.
func (m *MapRenderer) Render(boundaries []domain.Boundary, points []domain.Point) (string, error) {
	overlay, err := boundaryCollection(boundaries)
	if err != nil {
		return "", fmt.Errorf("encode boundaries: %w", err)
	}

	markers := make([]mapMarker, len(points))
	for i, p := range points {
		markers[i] = mapMarker{Lat: p.Lat, Lon: p.Lon, Popup: popupHTML(p)}
	}
	encoded, err := json.Marshal(markers)
	if err != nil {
		return "", fmt.Errorf("encode markers: %w", err)
	}

	return m.execute(mapPage{Boundaries: template.JS(overlay), Markers: template.JS(encoded)})
}

// RenderOrFallback never fails: if the map cannot be built it logs the cause
// and returns a map with a single marker whose popup carries the error.
func (m *MapRenderer) RenderOrFallback(boundaries []domain.Boundary, points []domain.Point) string {
	out, err := m.safeRender(boundaries, points)
	if err == nil {
		return out
	}

	m.logger.Error("map render failed", "error", err, "points", len(points))
	m.metrics.MapRenderErrors.Inc()
	return m.Fallback(err)
}

func (m *MapRenderer) safeRender(boundaries []domain.Boundary, points []domain.Point) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("map render panic: %v", r)
		}
	}()
	return m.Render(boundaries, points)
}

// Fallback returns a map centred on the home view with one marker reporting cause.
func (m *MapRenderer) Fallback(cause error) string {
	page := mapPage{
		Boundaries: template.JS(`{"type":"FeatureCollection","features":[]}`),
		Markers:    template.JS(`[]`),
		ErrorMarker: &mapMarker{
			Lat:   DefaultLat,
			Lon:   DefaultLon,
			Popup: "Error: " + html.EscapeString(cause.Error()),
		},
	}
	out, err := m.execute(page)
	if err != nil {
		m.logger.Error("fallback map render failed", "error", err)
		return "<!DOCTYPE html><html><body><p>Error: " + html.EscapeString(cause.Error()) + "</p></body></html>"
	}
	return out
}

func (m *MapRenderer) execute(page mapPage) (string, error) {
	page.Title = "GPS Points Map"
	page.Center = latLon{Lat: DefaultLat, Lon: DefaultLon}
	page.Zoom = DefaultZoom
	page.Street = streetLayer
	page.Satellite = m.satellite

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("execute map template: %w", err)
	}
	return buf.String(), nil
}

func boundaryCollection(boundaries []domain.Boundary) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(boundaries))}
	for _, b := range boundaries {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: b.Geometry,
			Properties: map[string]any{
				"name":    b.Name,
				"tooltip": "Region: " + html.EscapeString(b.Name),
			},
		})
	}
	return json.Marshal(&fc)
}

func popupHTML(p domain.Point) string {
	return fmt.Sprintf("<b>Region:</b> %s<br><b>Zone:</b> %s<br><b>Woreda:</b> %s<br><b>Kebele:</b> %s",
		html.EscapeString(p.Region),
		html.EscapeString(p.Zone),
		html.EscapeString(p.Woreda),
		html.EscapeString(p.Kebele),
	)
}
