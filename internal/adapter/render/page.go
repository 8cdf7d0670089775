package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
)

const (
	// DashboardTitle is the page heading and document title.
	DashboardTitle = "Ethiopia GPS Points Dashboard"
	footerCredit   = "Dashboard created with Go | Data: Ethiopia GPS Points"
)

// PageData is the state of one dashboard render.
type PageData struct {
	Selection domain.Selection
	Regions   []string
	Zones     []string
	Woredas   []string
	Summary   domain.Summary
}

type pageView struct {
	PageData
	Title    string
	Footer   string
	BarTitle string
	PieTitle string
	BarURL   template.URL
	PieURL   template.URL
	MapURL   template.URL
}

type dropdownView struct {
	Name     string
	Label    string
	Options  []string
	Selected string
}

// PageRenderer renders the dashboard page.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the embedded dashboard template.
func NewPageRenderer() *PageRenderer {
	funcs := template.FuncMap{
		"dropdown": func(name, label string, options []string, selected string) dropdownView {
			return dropdownView{Name: name, Label: label, Options: options, Selected: selected}
		},
	}
	tmpl := template.Must(template.New("dashboard.html.tmpl").Funcs(funcs).
		ParseFS(templateFS, "templates/dashboard.html.tmpl"))
	return &PageRenderer{tmpl: tmpl}
}

// Render writes the dashboard HTML for data.
func (p *PageRenderer) Render(w io.Writer, data PageData) error {
	query := SelectionQuery(data.Selection)
	view := pageView{
		PageData: data,
		Title:    DashboardTitle,
		Footer:   footerCredit,
		BarTitle: BarTitle(data.Summary.Bar),
		PieTitle: PieTitle(data.Summary.Pie),
		BarURL:   template.URL("/charts/bar.svg?" + query),
		PieURL:   template.URL("/charts/pie.svg?" + query),
		MapURL:   template.URL("/map?" + query),
	}
	if err := p.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("execute dashboard template: %w", err)
	}
	return nil
}

// SelectionQuery encodes sel as the query string the view endpoints accept.
func SelectionQuery(sel domain.Selection) string {
	v := url.Values{}
	v.Set("region", sel.Region)
	v.Set("zone", sel.Zone)
	v.Set("woreda", sel.Woreda)
	return v.Encode()
}
