// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
)

const (
	shortDateLayout   = "01/02/06"
	minPasswordLength = 8
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, limit int) (application.Summary, error)
}

type CategoryServiceInterface interface {
	GetExpenseCategoryNames() ([]string, error)
}

type Handler struct {
	templates   *template.Template
	dashboard   DashboardServiceInterface
	categories  CategoryServiceInterface
	recentLimit int
}

type pageData struct {
	Title string
}

type authPage struct {
	pageData
	MinPasswordLength int
}

type dashboardPage struct {
	pageData
	Dashboard       interfaces.DashboardResponse
	BalanceNegative bool
	Categories      []string
}

func shortDate(t time.Time) string {
	return t.UTC().Format(shortDateLayout)
}

// ParseTemplates parses every page under templates/ in templatesFS.
func ParseTemplates(templatesFS fs.FS) (*template.Template, error) {
	t, err := template.New("pages").
		Funcs(template.FuncMap{"shortDate": shortDate}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func NewHandler(templatesFS fs.FS, dashboard DashboardServiceInterface, categories CategoryServiceInterface, recentLimit int) (*Handler, error) {
	if dashboard == nil || categories == nil {
		return nil, fmt.Errorf("dashboard and category services must not be nil")
	}
	t, err := ParseTemplates(templatesFS)
	if err != nil {
		return nil, err
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &Handler{
		templates:   t,
		dashboard:   dashboard,
		categories:  categories,
		recentLimit: recentLimit,
	}, nil
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.GetDashboard(r.Context(), h.recentLimit)
	if err != nil {
		log.Error().Err(err).Msg("Error building dashboard page")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	categories, err := h.categories.GetExpenseCategoryNames()
	if err != nil {
		log.Error().Err(err).Msg("Error loading categories for dashboard page")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	h.render(w, "dashboard.html", dashboardPage{
		pageData:        pageData{Title: "Panel"},
		Dashboard:       interfaces.NewDashboardResponse(summary),
		BalanceNegative: summary.Balance.IsNegative(),
		Categories:      categories,
	})
}

func (h *Handler) Login(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "login.html", authPage{pageData: pageData{Title: "Iniciar sesión"}})
}

func (h *Handler) Register(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "register.html", authPage{
		pageData:          pageData{Title: "Crear cuenta"},
		MinPasswordLength: minPasswordLength,
	})
}

// render writes the page only once the template executed without error.
func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Template execution failed")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
