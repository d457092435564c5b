package api

import (
	"github.com/gofiber/fiber/v3"

	"studentdash/internal/analytics"
	"studentdash/internal/handlers"
)

// ViewHandler serves computed dashboard views as JSON.
type ViewHandler struct {
	views *handlers.Views
}

// NewViewHandler creates a new API view handler.
func NewViewHandler(views *handlers.Views) *ViewHandler {
	return &ViewHandler{views: views}
}

// viewResponse carries either a view or the empty-result notice.
type viewResponse struct {
	Dataset   string               `json:"dataset"`
	Selection analytics.Selection  `json:"selection"`
	Notice    string               `json:"notice,omitempty"`
	View      *analytics.Dashboard `json:"view"`
}

// Get computes the view for the request's selection.
func (h *ViewHandler) Get(c fiber.Ctx) error {
	view, err := h.views.Compute(c)
	if err != nil {
		return jsonFromError(c, err)
	}

	resp := viewResponse{
		Dataset:   view.Dataset.ID.String(),
		Selection: view.Selection,
		View:      view.Dashboard,
	}
	if view.Empty() {
		resp.Notice = analytics.NoticeNoData
	}
	return jsonSuccess(c, resp)
}

// recordsPageMax caps one page of raw records.
const recordsPageMax = 500

// Records returns the filtered rows, paged with limit and offset.
func (h *ViewHandler) Records(c fiber.Ctx) error {
	ds, err := h.views.Dataset()
	if err != nil {
		return jsonFromError(c, err)
	}
	sel, err := handlers.ResolveSelection(c, ds, h.views.Excluded())
	if err != nil {
		return jsonFromError(c, err)
	}

	limit := fiber.Query[int](c, "limit", 100)
	offset := fiber.Query[int](c, "offset", 0)
	if limit <= 0 || limit > recordsPageMax || offset < 0 {
		return jsonError(c, fiber.StatusBadRequest, "limit must be 1-500 and offset non-negative")
	}

	rows := analytics.Filter(ds.Records, sel)
	total := len(rows)
	start := min(offset, total)
	end := min(start+limit, total)

	return jsonSuccess(c, fiber.Map{
		"total":   total,
		"offset":  offset,
		"limit":   limit,
		"records": rows[start:end],
	})
}
