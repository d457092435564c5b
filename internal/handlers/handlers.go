package handlers

import (
	"github.com/gofiber/fiber/v3"

	"studentdash/internal/analytics"
	"studentdash/internal/charts"
	"studentdash/internal/config"
	"studentdash/internal/middleware"
)

// checkbox is one choice of a multi-select filter.
type checkbox struct {
	Value   string
	Checked bool
}

func checkboxes(values, selected []string) []checkbox {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	out := make([]checkbox, len(values))
	for i, v := range values {
		out[i] = checkbox{Value: v, Checked: chosen[v]}
	}
	return out
}

// chartRef is an embedded chart image on the dashboard page.
type chartRef struct {
	ID    string
	Title string
	URL   string
}

func chartRefs(ui *config.YAMLConfig, sel analytics.Selection) map[string]chartRef {
	query := SelectionQuery(sel)
	refs := make(map[string]chartRef, len(charts.IDs))
	for _, id := range charts.IDs {
		refs[id] = chartRef{
			ID:    id,
			Title: ui.ChartTitle(id, charts.DefaultTitle(id)),
			URL:   "/charts/" + id + ".svg?" + query,
		}
	}
	return refs
}

// chartOptions builds the render options of one chart from dashboard.yaml.
func chartOptions(ui *config.YAMLConfig, id string) charts.Options {
	w, h := ui.ChartSize(id)
	return charts.Options{
		Width:   w,
		Height:  h,
		Title:   ui.ChartTitle(id, charts.DefaultTitle(id)),
		Palette: ui.Palette(id),
	}
}

// userName returns the signed-in user's display name, if any.
func userName(c fiber.Ctx) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.DisplayName()
	}
	return ""
}
