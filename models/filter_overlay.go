package models

import "errors"

// ErrPriceHandlesCrossed is returned when a slider change would put min above max.
var ErrPriceHandlesCrossed = errors.New("price slider handles cannot cross")

// OverlayCallbacks connect a FilterOverlay to the view that hosts it.
// Nil callbacks are treated as no-ops.
type OverlayCallbacks struct {
	// OnFilterChange receives one call per field on Apply, in FilterFields order.
	OnFilterChange func(field string, value any)
	// OnClose is called once after Apply and once on Cancel. The host must
	// discard the overlay when it fires.
	OnClose func()
	// OnRender is called with the new draft after every change to it.
	OnRender func(draft FilterDraft)
}

// FilterOverlay holds the draft filters of an open filter overlay.
// It is not safe for concurrent use; hosts serialise access.
type FilterOverlay struct {
	source *FilterSelection
	draft  FilterDraft
	cb     OverlayCallbacks
}

// NewFilterOverlay mounts an overlay over sel, deriving the initial draft from it.
func NewFilterOverlay(sel *FilterSelection, cb OverlayCallbacks) *FilterOverlay {
	if cb.OnFilterChange == nil {
		cb.OnFilterChange = func(string, any) {}
	}
	if cb.OnClose == nil {
		cb.OnClose = func() {}
	}
	if cb.OnRender == nil {
		cb.OnRender = func(FilterDraft) {}
	}

	o := &FilterOverlay{cb: cb}
	o.resync(sel)
	return o
}

// Observe hands the overlay the parent's current selection. When sel is a
// different selection than the last one seen, every draft field is re-derived
// from it in one step and local edits are dropped. The same pointer is a no-op.
func (o *FilterOverlay) Observe(sel *FilterSelection) {
	if sel == o.source {
		return
	}
	o.resync(sel)
}

func (o *FilterOverlay) resync(sel *FilterSelection) {
	o.source = sel
	o.draft = DraftFromSelection(sel)
	o.render()
}

// Draft returns a copy of the current draft.
func (o *FilterOverlay) Draft() FilterDraft {
	return o.draft.Clone()
}

// SetPriceRange applies a dual-handle slider change. Handles are clamped to
// the slider bounds and may not cross; a crossing pair leaves the draft untouched.
func (o *FilterOverlay) SetPriceRange(lo, hi int) error {
	lo, hi = clampPrice(lo), clampPrice(hi)
	if lo > hi {
		return ErrPriceHandlesCrossed
	}
	o.draft.PriceRange = PriceRange{Min: ValidPrice(lo), Max: ValidPrice(hi)}
	o.render()
	return nil
}

// SetMinPriceText applies the min text input. Only the min side changes and
// it is not checked against max. Unparseable text is kept as an invalid bound.
func (o *FilterOverlay) SetMinPriceText(raw string) {
	o.draft.PriceRange.Min = ParsePrice(raw)
	o.render()
}

// SetMaxPriceText is the max-side counterpart of SetMinPriceText.
func (o *FilterOverlay) SetMaxPriceText(raw string) {
	o.draft.PriceRange.Max = ParsePrice(raw)
	o.render()
}

// TogglePropertyType selects v, or clears the selection if v is already selected.
func (o *FilterOverlay) TogglePropertyType(v string) {
	o.draft.PropertyType = toggleSingle(o.draft.PropertyType, v)
	o.render()
}

// ToggleRoomType selects v, or clears the selection if v is already selected.
func (o *FilterOverlay) ToggleRoomType(v string) {
	o.draft.RoomType = toggleSingle(o.draft.RoomType, v)
	o.render()
}

// ToggleAmenity removes v if selected, otherwise appends it.
func (o *FilterOverlay) ToggleAmenity(v string) {
	o.draft.Amenities = toggleMember(o.draft.Amenities, v)
	o.render()
}

// Clear resets the draft to the defaults. The overlay stays open.
func (o *FilterOverlay) Clear() {
	o.draft = DefaultFilterDraft()
	o.render()
}

// Apply emits every draft field to OnFilterChange, unvalidated, then calls OnClose.
func (o *FilterOverlay) Apply() {
	d := o.draft.Clone()
	o.cb.OnFilterChange(FieldMinPrice, d.PriceRange.Min)
	o.cb.OnFilterChange(FieldMaxPrice, d.PriceRange.Max)
	o.cb.OnFilterChange(FieldPropertyType, d.PropertyType)
	o.cb.OnFilterChange(FieldRoomType, d.RoomType)
	o.cb.OnFilterChange(FieldAmenities, d.Amenities)
	o.cb.OnClose()
}

// Cancel closes the overlay without emitting any field.
func (o *FilterOverlay) Cancel() {
	o.cb.OnClose()
}

func (o *FilterOverlay) render() {
	o.cb.OnRender(o.draft.Clone())
}

func clampPrice(n int) int {
	if n < PriceFloor {
		return PriceFloor
	}
	if n > PriceCeiling {
		return PriceCeiling
	}
	return n
}
