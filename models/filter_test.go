package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in    string
		want  int
		valid bool
	}{
		{"700", 700, true},
		{"  1500", 1500, true},
		{"+42", 42, true},
		{"-5", -5, true},
		{"123abc", 123, true},
		{"12.9", 12, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{" ", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := ParsePrice(tc.in)
			n, ok := got.Int()
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.want, n)
			} else {
				assert.Equal(t, tc.in, got.Raw())
				assert.Equal(t, "NaN", got.String())
			}
		})
	}
}

func TestPriceBoundJSON(t *testing.T) {
	b, err := json.Marshal(PriceRange{Min: ValidPrice(700), Max: InvalidPrice("abc")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":700,"max":null}`, string(b))

	var pr PriceRange
	require.NoError(t, json.Unmarshal([]byte(`{"min":1200,"max":null}`), &pr))
	assert.Equal(t, ValidPrice(1200), pr.Min)
	assert.False(t, pr.Max.IsValid())

	require.NoError(t, json.Unmarshal([]byte(`{"min":12.5,"max":3}`), &pr))
	assert.False(t, pr.Min.IsValid())
	assert.Equal(t, ValidPrice(3), pr.Max)

	assert.Error(t, json.Unmarshal([]byte(`{"min":"cheap"}`), &pr))
}

func TestDraftFromEmptySelectionUsesDefaults(t *testing.T) {
	want := FilterDraft{
		PriceRange: PriceRange{Min: ValidPrice(600), Max: ValidPrice(30000)},
		Amenities:  []string{},
	}
	assert.Equal(t, want, DraftFromSelection(&FilterSelection{}))
	assert.Equal(t, want, DraftFromSelection(nil))
	assert.Equal(t, want, DefaultFilterDraft())
}

func TestDraftFromSelection(t *testing.T) {
	sel := &FilterSelection{
		PriceRange:   &PriceRange{Min: ValidPrice(800), Max: ValidPrice(5000)},
		PropertyType: "Hotel",
		RoomType:     "Room",
		Amenities:    []string{"Pool", "Wifi"},
	}
	d := DraftFromSelection(sel)
	assert.Equal(t, ValidPrice(800), d.PriceRange.Min)
	assert.Equal(t, ValidPrice(5000), d.PriceRange.Max)
	assert.Equal(t, "Hotel", d.PropertyType)
	assert.Equal(t, "Room", d.RoomType)
	assert.Equal(t, []string{"Pool", "Wifi"}, d.Amenities)

	// the draft must not alias the parent's slice
	d.Amenities[0] = "Tv"
	assert.Equal(t, "Pool", sel.Amenities[0])
}

func TestDraftFromSelectionFallsBackForZeroAndInvalidBounds(t *testing.T) {
	sel := &FilterSelection{PriceRange: &PriceRange{Min: ValidPrice(0), Max: InvalidPrice("x")}}
	d := DraftFromSelection(sel)
	assert.Equal(t, ValidPrice(PriceFloor), d.PriceRange.Min)
	assert.Equal(t, ValidPrice(PriceCeiling), d.PriceRange.Max)
}

func TestToggleSingleDeselects(t *testing.T) {
	assert.Equal(t, "Flat", toggleSingle("", "Flat"))
	assert.Equal(t, "", toggleSingle(toggleSingle("", "Flat"), "Flat"))
	assert.Equal(t, "House", toggleSingle("Flat", "House"))
}

func TestToggleMemberSetAlgebra(t *testing.T) {
	set := toggleMember(nil, "Wifi")
	set = toggleMember(set, "Pool")
	assert.Equal(t, []string{"Wifi", "Pool"}, set)

	before := set
	set = toggleMember(set, "Wifi")
	assert.Equal(t, []string{"Pool"}, set)
	assert.Equal(t, []string{"Wifi", "Pool"}, before, "input slice must not change")

	// click order wins over catalog order
	set = toggleMember(toggleMember(nil, "Tv"), "Wifi")
	assert.Equal(t, []string{"Tv", "Wifi"}, set)
}

func TestSelectionWith(t *testing.T) {
	sel := FilterSelection{}
	var err error

	sel, err = sel.With(FieldMinPrice, ValidPrice(700))
	require.NoError(t, err)
	require.NotNil(t, sel.PriceRange)
	assert.Equal(t, ValidPrice(700), sel.PriceRange.Min)
	assert.Equal(t, ValidPrice(PriceCeiling), sel.PriceRange.Max)

	sel, err = sel.With(FieldMaxPrice, InvalidPrice("zz"))
	require.NoError(t, err)
	assert.False(t, sel.PriceRange.Max.IsValid())

	sel, err = sel.With(FieldPropertyType, "Flat")
	require.NoError(t, err)
	sel, err = sel.With(FieldRoomType, "Room")
	require.NoError(t, err)
	sel, err = sel.With(FieldAmenities, []string{"Wifi"})
	require.NoError(t, err)
	assert.Equal(t, "Flat", sel.PropertyType)
	assert.Equal(t, "Room", sel.RoomType)
	assert.Equal(t, []string{"Wifi"}, sel.Amenities)

	_, err = sel.With(FieldMinPrice, 700)
	assert.Error(t, err)
	_, err = sel.With("bedrooms", 2)
	assert.Error(t, err)
}

func TestSelectionWithDoesNotMutateReceiver(t *testing.T) {
	orig := FilterSelection{PriceRange: &PriceRange{Min: ValidPrice(900), Max: ValidPrice(2000)}}
	_, err := orig.With(FieldMinPrice, ValidPrice(1000))
	require.NoError(t, err)
	assert.Equal(t, ValidPrice(900), orig.PriceRange.Min)
}

func TestCatalogValues(t *testing.T) {
	values := func(opts []FilterOption) []string {
		out := make([]string, len(opts))
		for i, o := range opts {
			out[i] = o.Value
		}
		return out
	}
	assert.Equal(t, []string{"House", "Flat", "Guest House", "Hotel"}, values(PropertyTypeOptions()))
	assert.Equal(t, []string{"Entire Room", "Room", "AnyType"}, values(RoomTypeOptions()))
	assert.Equal(t, []string{"Wifi", "Kitchen", "Ac", "Washing Machine", "Tv", "Pool", "Free Parking"}, values(AmenityOptions()))

	opts := PropertyTypeOptions()
	opts[0].Value = "Castle"
	assert.True(t, IsPropertyType("House"))
	assert.False(t, IsPropertyType("Castle"))
	assert.True(t, IsRoomType("AnyType"))
	assert.True(t, IsAmenity("Free Parking"))
	assert.False(t, IsAmenity("Sauna"))
}

func TestSuggestOption(t *testing.T) {
	got, ok := SuggestOption(AmenityOptions(), "wi-fi")
	require.True(t, ok)
	assert.Equal(t, "Wifi", got)

	got, ok = SuggestOption(PropertyTypeOptions(), "flat")
	require.True(t, ok)
	assert.Equal(t, "Flat", got)

	_, ok = SuggestOption(PropertyTypeOptions(), "castle")
	assert.False(t, ok)
}
