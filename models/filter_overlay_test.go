package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filterCall struct {
	field string
	value any
}

// overlayRecorder captures every callback an overlay makes, in order.
type overlayRecorder struct {
	events  []string
	changes []filterCall
	closes  int
	renders []FilterDraft
}

func (r *overlayRecorder) callbacks() OverlayCallbacks {
	return OverlayCallbacks{
		OnFilterChange: func(field string, value any) {
			r.events = append(r.events, "change:"+field)
			r.changes = append(r.changes, filterCall{field, value})
		},
		OnClose: func() {
			r.events = append(r.events, "close")
			r.closes++
		},
		OnRender: func(d FilterDraft) {
			r.renders = append(r.renders, d)
		},
	}
}

func TestOverlayResyncReplacesEveryField(t *testing.T) {
	rec := &overlayRecorder{}
	s1 := &FilterSelection{
		PriceRange:   &PriceRange{Min: ValidPrice(1000), Max: ValidPrice(2000)},
		PropertyType: "House",
		RoomType:     "Room",
		Amenities:    []string{"Wifi"},
	}
	o := NewFilterOverlay(s1, rec.callbacks())
	o.ToggleAmenity("Pool")
	o.TogglePropertyType("Flat")

	s2 := &FilterSelection{RoomType: "AnyType"}
	o.Observe(s2)

	want := DraftFromSelection(s2)
	assert.Equal(t, want, o.Draft())
	assert.Equal(t, want, rec.renders[len(rec.renders)-1])
	for _, d := range rec.renders {
		// no rendered draft may mix s1-derived and s2-derived fields
		if d.RoomType == "AnyType" {
			assert.Equal(t, want, d)
		}
	}
}

func TestOverlayObserveSamePointerKeepsEdits(t *testing.T) {
	sel := &FilterSelection{}
	o := NewFilterOverlay(sel, OverlayCallbacks{})
	o.ToggleRoomType("Room")
	o.Observe(sel)
	assert.Equal(t, "Room", o.Draft().RoomType)

	// an equal value behind a new pointer is a new selection
	o.Observe(&FilterSelection{})
	assert.Equal(t, "", o.Draft().RoomType)
}

func TestOverlayToggleTwiceIsIdentity(t *testing.T) {
	o := NewFilterOverlay(&FilterSelection{}, OverlayCallbacks{})
	o.TogglePropertyType("Flat")
	assert.Equal(t, "Flat", o.Draft().PropertyType)
	o.TogglePropertyType("Flat")
	assert.Equal(t, "", o.Draft().PropertyType)

	o.ToggleRoomType("Entire Room")
	o.TogglePropertyType("Hotel")
	o.ToggleRoomType("Entire Room")
	assert.Equal(t, "", o.Draft().RoomType)
	assert.Equal(t, "Hotel", o.Draft().PropertyType, "room and property types are independent")

	o.TogglePropertyType("House")
	assert.Equal(t, "House", o.Draft().PropertyType)
}

func TestOverlayAmenities(t *testing.T) {
	o := NewFilterOverlay(&FilterSelection{}, OverlayCallbacks{})
	o.ToggleAmenity("Pool")
	o.ToggleAmenity("Wifi")
	assert.Equal(t, []string{"Pool", "Wifi"}, o.Draft().Amenities)
	o.ToggleAmenity("Pool")
	assert.Equal(t, []string{"Wifi"}, o.Draft().Amenities)
}

func TestOverlayClearFromAnyState(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{PropertyType: "Hotel"}, rec.callbacks())
	o.SetMinPriceText("5000")
	o.SetMaxPriceText("100")
	for _, a := range AmenityOptions() {
		o.ToggleAmenity(a.Value)
	}
	o.ToggleRoomType("Room")

	o.Clear()

	assert.Equal(t, DefaultFilterDraft(), o.Draft())
	assert.Empty(t, rec.changes)
	assert.Zero(t, rec.closes)
}

func TestOverlayApplyCallContract(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{}, rec.callbacks())
	require.NoError(t, o.SetPriceRange(700, 1500))
	o.TogglePropertyType("Flat")
	o.ToggleAmenity("Wifi")
	o.ToggleAmenity("Pool")

	o.Apply()

	assert.Equal(t, []filterCall{
		{FieldMinPrice, ValidPrice(700)},
		{FieldMaxPrice, ValidPrice(1500)},
		{FieldPropertyType, "Flat"},
		{FieldRoomType, ""},
		{FieldAmenities, []string{"Wifi", "Pool"}},
	}, rec.changes)
	assert.Equal(t, []string{
		"change:minPrice", "change:maxPrice", "change:propertyType",
		"change:roomType", "change:amenities", "close",
	}, rec.events)
}

func TestOverlayApplyHandsOutACopyOfAmenities(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{}, rec.callbacks())
	o.ToggleAmenity("Tv")
	o.Apply()

	emitted := rec.changes[4].value.([]string)
	emitted[0] = "Pool"
	assert.Equal(t, []string{"Tv"}, o.Draft().Amenities)
}

func TestOverlayCancelCallContract(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{}, rec.callbacks())
	o.ToggleAmenity("Kitchen")
	o.SetMinPriceText("junk")

	o.Cancel()

	assert.Equal(t, 1, rec.closes)
	assert.Empty(t, rec.changes)
}

func TestOverlaySliderRejectsCrossing(t *testing.T) {
	o := NewFilterOverlay(&FilterSelection{}, OverlayCallbacks{})
	require.NoError(t, o.SetPriceRange(2000, 8000))

	err := o.SetPriceRange(9000, 8000)
	assert.ErrorIs(t, err, ErrPriceHandlesCrossed)
	assert.Equal(t, PriceRange{Min: ValidPrice(2000), Max: ValidPrice(8000)}, o.Draft().PriceRange)

	require.NoError(t, o.SetPriceRange(5000, 5000))

	// handles stay inside the slider
	require.NoError(t, o.SetPriceRange(10, 99999))
	assert.Equal(t, DefaultPriceRange(), o.Draft().PriceRange)
}

func TestOverlayTextInputsForwardCrossedRange(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{}, rec.callbacks())
	o.SetMinPriceText("5000")
	o.SetMaxPriceText("100")
	o.Apply()

	assert.Equal(t, ValidPrice(5000), rec.changes[0].value)
	assert.Equal(t, ValidPrice(100), rec.changes[1].value)
}

func TestOverlayTextInputsOnlyTouchTheirSide(t *testing.T) {
	o := NewFilterOverlay(&FilterSelection{}, OverlayCallbacks{})
	o.SetMinPriceText("1200")
	assert.Equal(t, PriceRange{Min: ValidPrice(1200), Max: ValidPrice(PriceCeiling)}, o.Draft().PriceRange)
	o.SetMaxPriceText("2400")
	assert.Equal(t, PriceRange{Min: ValidPrice(1200), Max: ValidPrice(2400)}, o.Draft().PriceRange)
}

func TestOverlayForwardsInvalidPrice(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{}, rec.callbacks())
	o.SetMinPriceText("cheap")
	o.Apply()

	got, ok := rec.changes[0].value.(PriceBound)
	require.True(t, ok)
	assert.False(t, got.IsValid())
	assert.Equal(t, "cheap", got.Raw())
}

func TestOverlayRendersAfterEveryMutation(t *testing.T) {
	rec := &overlayRecorder{}
	o := NewFilterOverlay(&FilterSelection{}, rec.callbacks())
	require.Len(t, rec.renders, 1, "mount renders once")

	require.NoError(t, o.SetPriceRange(700, 900))
	o.SetMinPriceText("800")
	o.SetMaxPriceText("850")
	o.TogglePropertyType("House")
	o.ToggleRoomType("Room")
	o.ToggleAmenity("Wifi")
	o.Clear()
	o.Observe(&FilterSelection{})
	assert.Len(t, rec.renders, 9)

	_ = o.SetPriceRange(900, 700)
	assert.Len(t, rec.renders, 9, "rejected slider change does not render")

	assert.Equal(t, "House", rec.renders[4].PropertyType)
}
