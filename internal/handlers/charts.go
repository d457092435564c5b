package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"studentdash/internal/analytics"
	"studentdash/internal/charts"
	"studentdash/internal/config"
	"studentdash/internal/metrics"
)

// ChartHandler serves the dashboard charts as SVG images.
type ChartHandler struct {
	views *Views
	ui    *config.YAMLConfig
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(views *Views, ui *config.YAMLConfig) *ChartHandler {
	return &ChartHandler{views: views, ui: ui}
}

// Render draws the chart named by the :id route parameter. An empty
// selection or a render failure yields a placeholder image with a notice.
func (h *ChartHandler) Render(c fiber.Ctx) error {
	id := c.Params("id")
	if !slices.Contains(charts.IDs, id) {
		return fiber.NewError(fiber.StatusNotFound, "chart not found")
	}

	view, err := h.views.Compute(c)
	if err != nil {
		return err
	}

	// The same dataset snapshot and selection always draw the same image.
	etag := `"` + uuid.NewSHA1(view.Dataset.ID, []byte(id+"?"+SelectionQuery(view.Selection))).String() + `"`
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	opts := chartOptions(h.ui, id)
	var buf bytes.Buffer

	switch {
	case view.Empty():
		metrics.RecordChart(id, metrics.OutcomeNoData)
		err = charts.Placeholder(&buf, analytics.NoticeNoData, opts)
	default:
		err = charts.Render(&buf, id, view.Dashboard, opts)
		if errors.Is(err, charts.ErrNothingToDraw) {
			buf.Reset()
			metrics.RecordChart(id, metrics.OutcomeNoData)
			err = charts.Placeholder(&buf, "Not enough data to draw this chart.", opts)
		} else if err != nil {
			slog.Error("chart render failed", "chart", id, "error", err)
			buf.Reset()
			metrics.RecordChart(id, metrics.OutcomeError)
			err = charts.Placeholder(&buf, "This chart could not be drawn.", opts)
		} else {
			metrics.RecordChart(id, metrics.OutcomeOK)
		}
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "private, no-cache")
	c.Set(fiber.HeaderETag, etag)
	return c.Send(buf.Bytes())
}
