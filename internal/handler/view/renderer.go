// Package view renders the console screens from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"loyalty-console/internal/pkg/format"
	"loyalty-console/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/gorilla/csrf"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageScan      = "scan"
	PagePass      = "pass"
)

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertFailure AlertKind = "failure"
)

// Alert is shown once, above the page content.
type Alert struct {
	Kind    AlertKind
	Message string
}

// Page is the data handed to every template.
type Page struct {
	Title     string
	Employee  *usecase.Employee
	Alert     *Alert
	CSRFField template.HTML
	Screen    string // pass screen shown; navigation links release it
	Data      any
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(f *format.Formatter) (*Renderer, error) {
	funcs := template.FuncMap{
		"number":   f.Number,
		"lastUsed": f.LastUsed,
		"time":     func(t time.Time) string { return f.Time(t) },
	}

	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{PageLogin, PageDashboard, PageScan, PagePass} {
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

// HTML writes page name with status. The CSRF field is filled from the
// request.
func (r *Renderer) HTML(c *gin.Context, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		panic("view: unknown page " + name)
	}
	page.CSRFField = csrf.TemplateField(c.Request)

	c.Render(status, render.HTML{
		Template: t,
		Name:     "layout.html",
		Data:     page,
	})
}
