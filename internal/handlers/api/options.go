package api

import (
	"github.com/gofiber/fiber/v3"

	"studentdash/internal/analytics"
	"studentdash/internal/handlers"
)

// OptionsHandler lists the filter choices.
type OptionsHandler struct {
	views *handlers.Views
}

// NewOptionsHandler creates a new API options handler.
func NewOptionsHandler(views *handlers.Views) *OptionsHandler {
	return &OptionsHandler{views: views}
}

// Get returns the activities and intensity levels present in the dataset
// and the default selection.
func (h *OptionsHandler) Get(c fiber.Ctx) error {
	ds, err := h.views.Dataset()
	if err != nil {
		return jsonFromError(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"dataset":           ds.ID.String(),
		"options":           ds.Options(h.views.Excluded()),
		"intensity_order":   analytics.IntensityOrder,
		"intensity_derived": ds.IntensityDerived,
	})
}
