package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gostays/metrics"
	"gostays/models"
	"gostays/web/pages/search"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// overlayState is returned by every overlay operation so the client can
// swap in the freshly rendered markup.
type overlayState struct {
	Draft models.FilterDraft `json:"draft"`
	HTML  string             `json:"html"`
}

// appliedState is returned once the overlay closes.
type appliedState struct {
	Selection models.FilterSelection `json:"selection"`
	Token     string                 `json:"token"`
}

type priceRangeInput struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type valueInput struct {
	Value string `json:"value"`
}

// sessionFor returns the search session resolved by SessionMiddleware,
// with the overlay renderer installed.
func sessionFor(ctx rweb.Context) *models.SearchSession {
	id, _ := ctx.Get("session_id").(string)
	sess := models.Sessions.Get(id)
	sess.SetRenderer(search.RenderFilterOverlay)
	return sess
}

// GetFilterOptions handles GET /api/v1/filters/options
// Returns the option catalogs and the slider bounds.
func GetFilterOptions(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, models.GetFilterCatalog())
}

// GetAppliedFilters handles GET /api/v1/filters
func GetAppliedFilters(ctx rweb.Context) error {
	return writeApplied(ctx, sessionFor(ctx).Selection())
}

// OpenFilterOverlay handles POST /api/v1/filters/overlay
// Opens the overlay seeded from the applied selection.
func OpenFilterOverlay(ctx rweb.Context) error {
	sess := sessionFor(ctx)
	draft := sess.OpenFilters()
	recordOp("open", nil)
	logger.Debug("Filter overlay opened", "session", sess.ID)
	return writeSuccess(ctx, http.StatusOK, overlayState{Draft: draft, HTML: sess.View()})
}

// GetFilterDraft handles GET /api/v1/filters/overlay
func GetFilterDraft(ctx rweb.Context) error {
	sess := sessionFor(ctx)
	draft, err := sess.Draft()
	if err != nil {
		return writeOverlayError(ctx, err, draft, "")
	}
	return writeSuccess(ctx, http.StatusOK, overlayState{Draft: draft, HTML: sess.View()})
}

// SetPriceRange handles POST /api/v1/filters/overlay/price
// Body: {"min": 1000, "max": 5000}, as moved on the slider.
func SetPriceRange(ctx rweb.Context) error {
	var in priceRangeInput
	if err := json.Unmarshal(ctx.Request().Body(), &in); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode price range"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	return editOverlay(ctx, "price", func(o *models.FilterOverlay) error {
		return o.SetPriceRange(in.Min, in.Max)
	})
}

// SetMinPrice handles POST /api/v1/filters/overlay/price/min
// Body: {"value": "1200"}; the text is kept as typed, even when it is not a number.
func SetMinPrice(ctx rweb.Context) error {
	in, ok := readValue(ctx)
	if !ok {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	return editOverlay(ctx, "price_min", func(o *models.FilterOverlay) error {
		o.SetMinPriceText(in.Value)
		return nil
	})
}

// SetMaxPrice handles POST /api/v1/filters/overlay/price/max
func SetMaxPrice(ctx rweb.Context) error {
	in, ok := readValue(ctx)
	if !ok {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	return editOverlay(ctx, "price_max", func(o *models.FilterOverlay) error {
		o.SetMaxPriceText(in.Value)
		return nil
	})
}

// TogglePropertyType handles POST /api/v1/filters/overlay/property-type
// Body: {"value": "Flat"}. Choosing the selected type again clears it.
func TogglePropertyType(ctx rweb.Context) error {
	in, ok := readValue(ctx)
	if !ok {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if !models.IsPropertyType(in.Value) {
		return writeUnknownOption(ctx, "property type", models.PropertyTypeOptions(), in.Value)
	}
	return editOverlay(ctx, "property_type", func(o *models.FilterOverlay) error {
		o.TogglePropertyType(in.Value)
		return nil
	})
}

// ToggleRoomType handles POST /api/v1/filters/overlay/room-type
func ToggleRoomType(ctx rweb.Context) error {
	in, ok := readValue(ctx)
	if !ok {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if !models.IsRoomType(in.Value) {
		return writeUnknownOption(ctx, "room type", models.RoomTypeOptions(), in.Value)
	}
	return editOverlay(ctx, "room_type", func(o *models.FilterOverlay) error {
		o.ToggleRoomType(in.Value)
		return nil
	})
}

// ToggleAmenity handles POST /api/v1/filters/overlay/amenities
func ToggleAmenity(ctx rweb.Context) error {
	in, ok := readValue(ctx)
	if !ok {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if !models.IsAmenity(in.Value) {
		return writeUnknownOption(ctx, "amenity", models.AmenityOptions(), in.Value)
	}
	return editOverlay(ctx, "amenity", func(o *models.FilterOverlay) error {
		o.ToggleAmenity(in.Value)
		return nil
	})
}

// ClearFilters handles POST /api/v1/filters/overlay/clear
// Resets the draft only; the applied selection changes on apply.
func ClearFilters(ctx rweb.Context) error {
	return editOverlay(ctx, "clear", func(o *models.FilterOverlay) error {
		o.Clear()
		return nil
	})
}

// ApplyFilters handles POST /api/v1/filters/overlay/apply
// Commits the draft and closes the overlay.
func ApplyFilters(ctx rweb.Context) error {
	sess := sessionFor(ctx)
	sel, err := sess.ApplyFilters()
	recordOp("apply", err)
	if err != nil {
		return writeOverlayError(ctx, err, models.FilterDraft{}, "")
	}
	metrics.FiltersApplied.Inc()
	logger.Info("Filters applied", "session", sess.ID)
	return writeApplied(ctx, sel)
}

// CancelFilters handles POST /api/v1/filters/overlay/cancel
// Closes the overlay and discards the draft.
func CancelFilters(ctx rweb.Context) error {
	sess := sessionFor(ctx)
	err := sess.CancelFilters()
	recordOp("cancel", err)
	if err != nil {
		return writeOverlayError(ctx, err, models.FilterDraft{}, "")
	}
	return writeApplied(ctx, sess.Selection())
}

// editOverlay applies fn to the session's open overlay and writes the new state.
func editOverlay(ctx rweb.Context, op string, fn func(o *models.FilterOverlay) error) error {
	sess := sessionFor(ctx)
	draft, err := sess.Edit(fn)
	recordOp(op, err)
	if err != nil {
		return writeOverlayError(ctx, err, draft, sess.View())
	}
	return writeSuccess(ctx, http.StatusOK, overlayState{Draft: draft, HTML: sess.View()})
}

// writeOverlayError maps overlay errors to status codes.
func writeOverlayError(ctx rweb.Context, err error, draft models.FilterDraft, html string) error {
	switch {
	case errors.Is(err, models.ErrOverlayClosed):
		return writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrPriceHandlesCrossed):
		return writeErrorData(ctx, http.StatusUnprocessableEntity, err.Error(),
			overlayState{Draft: draft, HTML: html})
	default:
		logger.LogErr(serr.Wrap(err, "filter overlay operation failed"), "overlay error")
		return writeError(ctx, http.StatusInternalServerError, "filter overlay error")
	}
}

// writeUnknownOption rejects a value outside its catalog, suggesting the nearest one.
func writeUnknownOption(ctx rweb.Context, kind string, opts []models.FilterOption, v string) error {
	msg := fmt.Sprintf("unknown %s %q", kind, v)
	if s, ok := models.SuggestOption(opts, v); ok {
		msg += fmt.Sprintf(", did you mean %q?", s)
	}
	return writeError(ctx, http.StatusBadRequest, msg)
}

func recordOp(op string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, models.ErrOverlayClosed):
		outcome = metrics.OutcomeClosed
	case errors.Is(err, models.ErrPriceHandlesCrossed):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	metrics.OverlayOps.WithLabelValues(op, outcome).Inc()
}

func writeApplied(ctx rweb.Context, sel models.FilterSelection) error {
	token, err := models.EncodeSelectionToken(sel)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to encode selection token"), "encode error")
		return writeError(ctx, http.StatusInternalServerError, "failed to encode selection")
	}
	return writeSuccess(ctx, http.StatusOK, appliedState{Selection: sel, Token: token})
}

func readValue(ctx rweb.Context) (valueInput, bool) {
	var in valueInput
	if err := json.Unmarshal(ctx.Request().Body(), &in); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return in, false
	}
	return in, true
}
