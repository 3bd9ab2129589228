package models

import (
	"encoding/base64"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// selectionWire is the msgpack shape of a FilterSelection. Price bounds are
// flattened so the invalid variant survives the round trip.
type selectionWire struct {
	HasPrice     bool     `msgpack:"p"`
	MinValid     bool     `msgpack:"mv"`
	Min          int      `msgpack:"mn"`
	MinRaw       string   `msgpack:"mr,omitempty"`
	MaxValid     bool     `msgpack:"xv"`
	Max          int      `msgpack:"mx"`
	MaxRaw       string   `msgpack:"xr,omitempty"`
	PropertyType string   `msgpack:"pt,omitempty"`
	RoomType     string   `msgpack:"rt,omitempty"`
	Amenities    []string `msgpack:"am,omitempty"`
}

// EncodeSelectionToken packs a selection into a URL-safe string so a search
// page link can carry its filters.
//
// Encoding pipeline: selection -> msgpack bytes -> unpadded Base64URL string
func EncodeSelectionToken(sel FilterSelection) (string, error) {
	w := selectionWire{
		PropertyType: sel.PropertyType,
		RoomType:     sel.RoomType,
		Amenities:    sel.Amenities,
	}
	if sel.PriceRange != nil {
		w.HasPrice = true
		w.Min, w.MinValid = sel.PriceRange.Min.Int()
		w.Max, w.MaxValid = sel.PriceRange.Max.Int()
		if !w.MinValid {
			w.MinRaw = sel.PriceRange.Min.Raw()
		}
		if !w.MaxValid {
			w.MaxRaw = sel.PriceRange.Max.Raw()
		}
	}

	b, err := msgpack.Marshal(&w)
	if err != nil {
		return "", serr.Wrap(err, "failed to msgpack encode selection")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeSelectionToken reverses EncodeSelectionToken. An empty token is the empty selection.
func DecodeSelectionToken(token string) (FilterSelection, error) {
	if token == "" {
		return FilterSelection{}, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return FilterSelection{}, serr.Wrap(err, "failed to decode base64 selection token")
	}

	var w selectionWire
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return FilterSelection{}, serr.Wrap(err, "failed to unmarshal msgpack selection")
	}

	sel := FilterSelection{
		PropertyType: w.PropertyType,
		RoomType:     w.RoomType,
		Amenities:    w.Amenities,
	}
	if w.HasPrice {
		pr := PriceRange{Min: InvalidPrice(w.MinRaw), Max: InvalidPrice(w.MaxRaw)}
		if w.MinValid {
			pr.Min = ValidPrice(w.Min)
		}
		if w.MaxValid {
			pr.Max = ValidPrice(w.Max)
		}
		sel.PriceRange = &pr
	}
	return sel, nil
}
