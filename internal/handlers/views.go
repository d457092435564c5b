package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"studentdash/internal/analytics"
	"studentdash/internal/config"
	"studentdash/internal/dataset"
	"studentdash/internal/metrics"
	"studentdash/internal/validation"
)

// Query parameters of a filter selection.
const (
	ParamActivity  = "activity"
	ParamIntensity = "intensity"
	// ParamApply marks a submitted filter form. Its lists are used as
	// given, so unticking every box yields an empty selection.
	ParamApply = "apply"
	// ParamReset drops the saved selection and returns to the default.
	ParamReset = "reset"
)

const sessionSelectionKey = "selection"

// Views computes dashboard views for incoming requests. Each call filters
// the shared dataset from scratch.
type Views struct {
	store  *dataset.Store
	ui     *config.YAMLConfig
	fitter analytics.Fitter
}

// NewViews creates a view service. A nil fitter disables trendlines.
func NewViews(store *dataset.Store, ui *config.YAMLConfig, fitter analytics.Fitter) *Views {
	return &Views{store: store, ui: ui, fitter: fitter}
}

// View is one computed request. Dashboard is nil when nothing matched.
type View struct {
	Dataset   *dataset.Dataset
	Selection analytics.Selection
	Dashboard *analytics.Dashboard
}

// Empty reports whether the selection matched no rows.
func (v *View) Empty() bool { return v.Dashboard == nil }

// Dataset returns the loaded dataset or a 503 error.
func (s *Views) Dataset() (*dataset.Dataset, error) {
	ds, err := s.store.Get()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "dataset is not loaded")
	}
	return ds, nil
}

// Excluded returns the activities left out of the default selection.
func (s *Views) Excluded() []string {
	return s.ui.Filters.ExcludedDefaultActivities
}

// Compute resolves the request's selection and builds its view. An empty
// result is not an error; check View.Empty.
func (s *Views) Compute(c fiber.Ctx) (*View, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	sel, err := ResolveSelection(c, ds, s.Excluded())
	if err != nil {
		metrics.RecordView(metrics.OutcomeInvalid, 0)
		return nil, err
	}

	start := time.Now()
	d, err := analytics.Build(ds.Records, sel, analytics.Options{
		TopN:   s.ui.Filters.TopN,
		Fitter: s.fitter,
	})
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, analytics.ErrNoData):
		metrics.RecordView(metrics.OutcomeNoData, elapsed)
		return &View{Dataset: ds, Selection: sel}, nil
	case err != nil:
		return nil, err
	}

	metrics.RecordView(metrics.OutcomeOK, elapsed)
	slog.Debug("view computed", "rows", d.RowCount, "activities", len(sel.Activities), "elapsed", elapsed)
	return &View{Dataset: ds, Selection: sel, Dashboard: d}, nil
}

// ResolveSelection picks the selection for a request. A submitted form or
// explicit query parameters win and are saved in the session; otherwise the
// session's last selection is reused, then the dataset default.
func ResolveSelection(c fiber.Ctx, ds *dataset.Dataset, excluded []string) (analytics.Selection, error) {
	args := c.Request().URI().QueryArgs()
	activities := peekAll(args.PeekMulti(ParamActivity))
	intensities := peekAll(args.PeekMulti(ParamIntensity))

	if ok, msg := validation.ValidateSelection(activities, intensities); !ok {
		return analytics.Selection{}, fiber.NewError(fiber.StatusBadRequest, msg)
	}

	if args.Has(ParamReset) {
		clearSelection(c)
		return ds.Options(excluded).Default, nil
	}

	if args.Has(ParamApply) {
		sel := analytics.Selection{Activities: activities, Intensities: intensities}
		saveSelection(c, sel)
		return sel, nil
	}

	base, saved := loadSelection(c)
	if !saved {
		base = ds.Options(excluded).Default
	}

	// A lone filter parameter replaces that filter only.
	if len(activities) > 0 || len(intensities) > 0 {
		if len(activities) > 0 {
			base.Activities = activities
		}
		if len(intensities) > 0 {
			base.Intensities = intensities
		}
		saveSelection(c, base)
	}
	return base, nil
}

// SelectionQuery encodes sel as query parameters that reproduce it exactly.
func SelectionQuery(sel analytics.Selection) string {
	q := url.Values{}
	q.Set(ParamApply, "1")
	for _, a := range sel.Activities {
		q.Add(ParamActivity, a)
	}
	for _, i := range sel.Intensities {
		q.Add(ParamIntensity, i)
	}
	return q.Encode()
}

func peekAll(values [][]byte) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func saveSelection(c fiber.Ctx, sel analytics.Selection) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	raw, err := json.Marshal(sel)
	if err != nil {
		slog.Error("failed to encode selection", "error", err)
		return
	}
	sess.Set(sessionSelectionKey, string(raw))
}

func clearSelection(c fiber.Ctx) {
	if sess := session.FromContext(c); sess != nil {
		sess.Delete(sessionSelectionKey)
	}
}

func loadSelection(c fiber.Ctx) (analytics.Selection, bool) {
	sess := session.FromContext(c)
	if sess == nil {
		return analytics.Selection{}, false
	}
	raw, ok := sess.Get(sessionSelectionKey).(string)
	if !ok || raw == "" {
		return analytics.Selection{}, false
	}

	var sel analytics.Selection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		slog.Warn("discarding unreadable saved selection", "error", err)
		sess.Delete(sessionSelectionKey)
		return analytics.Selection{}, false
	}
	return sel, true
}
