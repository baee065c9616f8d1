// Package render produces the storefront HTML: the full page, the grid
// fragment swapped on every interaction, and the quick-view overlay.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/bradykim7/shopfront/internal/models"
	"github.com/bradykim7/shopfront/internal/page"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer executes the embedded templates
type Renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// PageData is the input of the full page template
type PageData struct {
	View            page.View
	DescriptionHTML template.HTML
	// Highlight is the product to scroll to and open once after load
	Highlight *models.Product
}

// New parses the templates
func New() (*Renderer, error) {
	r := &Renderer{
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
	}
	funcs := template.FuncMap{
		"price":      models.FormatPrice,
		"badgeLabel": badgeLabel,
		"add":        func(a, b int) int { return a + b },
		"pathEscape": url.PathEscape,
	}
	t, err := template.New("_root").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = t
	return r, nil
}

// Page renders the whole document
func (r *Renderer) Page(w io.Writer, v page.View, highlight *models.Product) error {
	data := PageData{
		View:            v,
		DescriptionHTML: r.Markdown(v.Description),
		Highlight:       highlight,
	}
	return r.execute(w, "page", data)
}

// Grid renders the fragment replaced after each interaction
func (r *Renderer) Grid(w io.Writer, v page.View) error {
	return r.execute(w, "grid", v)
}

// QuickView renders the overlay for one product
func (r *Renderer) QuickView(w io.Writer, p models.Product) error {
	return r.execute(w, "quickview", p)
}

// Markdown renders collection copy and strips anything unsafe
func (r *Renderer) Markdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// execute buffers the output so a failed template never writes a partial page
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func badgeLabel(b models.Badge) string {
	switch b {
	case models.BadgeSale:
		return "Sale"
	case models.BadgeNew:
		return "New"
	default:
		return ""
	}
}
