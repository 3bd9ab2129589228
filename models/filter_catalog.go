package models

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FilterOption is one selectable entry of a filter catalog.
// Value is the contract; Label and Icon (a Material icon name) are presentation.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var propertyTypeOptions = []FilterOption{
	{Value: "House", Label: "House", Icon: "home"},
	{Value: "Flat", Label: "Flat", Icon: "apartment"},
	{Value: "Guest House", Label: "Guest House", Icon: "hotel"},
	{Value: "Hotel", Label: "Hotel", Icon: "meeting_room"},
}

var roomTypeOptions = []FilterOption{
	{Value: "Entire Room", Label: "Entire Room", Icon: "hotel"},
	{Value: "Room", Label: "Room", Icon: "meeting_room"},
	{Value: "AnyType", Label: "AnyType", Icon: "apartment"},
}

var amenityOptions = []FilterOption{
	{Value: "Wifi", Label: "Wifi", Icon: "wifi"},
	{Value: "Kitchen", Label: "Kitchen", Icon: "kitchen"},
	{Value: "Ac", Label: "AC", Icon: "ac_unit"},
	{Value: "Washing Machine", Label: "Washing Machine", Icon: "local_laundry_service"},
	{Value: "Tv", Label: "Tv", Icon: "tv"},
	{Value: "Pool", Label: "Pool", Icon: "pool"},
	{Value: "Free Parking", Label: "Free parking", Icon: "local_parking"},
}

// PropertyTypeOptions returns the property type catalog in display order.
func PropertyTypeOptions() []FilterOption { return append([]FilterOption{}, propertyTypeOptions...) }

// RoomTypeOptions returns the room type catalog in display order.
func RoomTypeOptions() []FilterOption { return append([]FilterOption{}, roomTypeOptions...) }

// AmenityOptions returns the amenity catalog in display order.
func AmenityOptions() []FilterOption { return append([]FilterOption{}, amenityOptions...) }

// FilterCatalog bundles the catalogs and slider bounds for API clients.
type FilterCatalog struct {
	PropertyTypes []FilterOption `json:"propertyTypes"`
	RoomTypes     []FilterOption `json:"roomTypes"`
	Amenities     []FilterOption `json:"amenities"`
	PriceFloor    int            `json:"priceFloor"`
	PriceCeiling  int            `json:"priceCeiling"`
}

// GetFilterCatalog returns a fresh copy of all catalogs.
func GetFilterCatalog() FilterCatalog {
	return FilterCatalog{
		PropertyTypes: PropertyTypeOptions(),
		RoomTypes:     RoomTypeOptions(),
		Amenities:     AmenityOptions(),
		PriceFloor:    PriceFloor,
		PriceCeiling:  PriceCeiling,
	}
}

// IsPropertyType reports whether v is in the property type catalog.
func IsPropertyType(v string) bool { return inCatalog(propertyTypeOptions, v) }

// IsRoomType reports whether v is in the room type catalog.
func IsRoomType(v string) bool { return inCatalog(roomTypeOptions, v) }

// IsAmenity reports whether v is in the amenity catalog.
func IsAmenity(v string) bool { return inCatalog(amenityOptions, v) }

func inCatalog(opts []FilterOption, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// maxSuggestDistance bounds how far a typo may be from a catalog value.
const maxSuggestDistance = 3

// SuggestOption returns the catalog value closest to v, compared case-insensitively,
// when it is within a few edits.
func SuggestOption(opts []FilterOption, v string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, o := range opts {
		d := levenshtein.ComputeDistance(strings.ToLower(o.Value), strings.ToLower(v))
		if d < bestDist {
			best, bestDist = o.Value, d
		}
	}
	return best, best != ""
}
