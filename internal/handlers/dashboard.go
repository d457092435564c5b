package handlers

import (
	"github.com/gofiber/fiber/v3"

	"studentdash/internal/analytics"
	"studentdash/internal/charts"
	"studentdash/internal/config"
)

// DashboardHandler serves the dashboard page.
type DashboardHandler struct {
	views *Views
	cfg   *config.Config
	ui    *config.YAMLConfig
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(views *Views, cfg *config.Config, ui *config.YAMLConfig) *DashboardHandler {
	return &DashboardHandler{views: views, cfg: cfg, ui: ui}
}

// Index renders the dashboard for the request's filter selection.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	view, err := h.views.Compute(c)
	if err != nil {
		return err
	}

	options := view.Dataset.Options(h.views.Excluded())

	data := fiber.Map{
		"Title":       h.cfg.SiteTitle,
		"Sections":    h.ui.Sections,
		"Activities":  checkboxes(options.Activities, view.Selection.Activities),
		"Intensities": checkboxes(options.Intensities, view.Selection.Intensities),
		"UserName":    userName(c),
	}

	if view.Empty() {
		data["Notice"] = analytics.NoticeNoData
		return c.Render("index", MergeBranding(data, h.cfg))
	}

	d := view.Dashboard
	refs := chartRefs(h.ui, view.Selection)
	data["View"] = d
	data["Correlation"] = d.Correlation.String()
	data["AvgGPAChart"] = refs[charts.AvgGPA]
	data["GPAShareChart"] = refs[charts.GPAShare]
	data["WellBeingBoxChart"] = refs[charts.WellBeingBox]
	data["GPABoxChart"] = refs[charts.GPABox]
	data["AvgWellBeingChart"] = refs[charts.AvgWellBeing]
	data["ScatterChart"] = refs[charts.ScatterPlot]

	return c.Render("index", MergeBranding(data, h.cfg))
}
