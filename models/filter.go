package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/rohanthewiz/serr"
)

// Slider bounds for the price range. These are also the draft defaults.
const (
	PriceFloor   = 600
	PriceCeiling = 30000
)

// Field names emitted by an Apply, in emission order.
const (
	FieldMinPrice     = "minPrice"
	FieldMaxPrice     = "maxPrice"
	FieldPropertyType = "propertyType"
	FieldRoomType     = "roomType"
	FieldAmenities    = "amenities"
)

// FilterFields lists the Apply emission order.
var FilterFields = []string{FieldMinPrice, FieldMaxPrice, FieldPropertyType, FieldRoomType, FieldAmenities}

// PriceBound is one side of a price range. It is either a valid integer or
// the result of a failed parse, which keeps the raw text that was typed.
// Invalid bounds are stored and forwarded as-is; nothing coerces them.
type PriceBound struct {
	value int
	raw   string
	valid bool
}

// ValidPrice returns a bound holding n.
func ValidPrice(n int) PriceBound {
	return PriceBound{value: n, raw: strconv.Itoa(n), valid: true}
}

// InvalidPrice returns the "not a number" bound for raw input that did not parse.
func InvalidPrice(raw string) PriceBound {
	return PriceBound{raw: raw}
}

// ParsePrice parses the leading base-10 integer of s the way a browser's
// parseInt does: leading whitespace and a sign are accepted, trailing junk is
// ignored. Input with no leading digits yields an invalid bound.
func ParsePrice(s string) PriceBound {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if t != "" && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}

	end := 0
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
	}
	if end == 0 {
		return InvalidPrice(s)
	}

	n, err := strconv.Atoi(t[:end])
	if err != nil { // out of int range
		return InvalidPrice(s)
	}
	if neg {
		n = -n
	}
	return ValidPrice(n)
}

// IsValid reports whether the bound holds a number.
func (p PriceBound) IsValid() bool { return p.valid }

// Int returns the number and whether the bound is valid.
func (p PriceBound) Int() (int, bool) { return p.value, p.valid }

// Raw returns the text an invalid bound was parsed from, or the canonical digits of a valid one.
func (p PriceBound) Raw() string { return p.raw }

// String renders the bound for display; invalid bounds render as "NaN".
func (p PriceBound) String() string {
	if !p.valid {
		return "NaN"
	}
	return strconv.Itoa(p.value)
}

// MarshalJSON encodes a valid bound as a number and an invalid one as null.
func (p PriceBound) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(p.value)), nil
}

// UnmarshalJSON accepts a number or null.
func (p *PriceBound) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = InvalidPrice("")
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return serr.Wrap(err, "price bound must be a number or null")
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		*p = InvalidPrice(string(data))
		return nil
	}
	*p = ValidPrice(int(f))
	return nil
}

// PriceRange is a min/max pair. Min > Max is representable.
type PriceRange struct {
	Min PriceBound `json:"min"`
	Max PriceBound `json:"max"`
}

// DefaultPriceRange returns the full slider span.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: ValidPrice(PriceFloor), Max: ValidPrice(PriceCeiling)}
}

// FilterSelection is the applied set of search filters owned by a parent view.
// Absent fields mean "no constraint".
type FilterSelection struct {
	PriceRange   *PriceRange `json:"priceRange,omitempty"`
	PropertyType string      `json:"propertyType,omitempty"`
	RoomType     string      `json:"roomType,omitempty"`
	Amenities    []string    `json:"amenities,omitempty"`
}

// Clone returns a deep copy.
func (s FilterSelection) Clone() FilterSelection {
	out := FilterSelection{PropertyType: s.PropertyType, RoomType: s.RoomType}
	if s.PriceRange != nil {
		pr := *s.PriceRange
		out.PriceRange = &pr
	}
	if s.Amenities != nil {
		out.Amenities = append([]string{}, s.Amenities...)
	}
	return out
}

// With returns a copy of s with one field replaced by a value emitted from an
// Apply. minPrice and maxPrice take a PriceBound, amenities a []string and the
// type fields a string.
func (s FilterSelection) With(field string, value any) (FilterSelection, error) {
	out := s.Clone()
	switch field {
	case FieldMinPrice, FieldMaxPrice:
		bound, ok := value.(PriceBound)
		if !ok {
			return s, serr.New(fmt.Sprintf("%s requires a PriceBound", field))
		}
		if out.PriceRange == nil {
			pr := DefaultPriceRange()
			out.PriceRange = &pr
		}
		if field == FieldMinPrice {
			out.PriceRange.Min = bound
		} else {
			out.PriceRange.Max = bound
		}
	case FieldPropertyType, FieldRoomType:
		str, ok := value.(string)
		if !ok {
			return s, serr.New(fmt.Sprintf("%s requires a string", field))
		}
		if field == FieldPropertyType {
			out.PropertyType = str
		} else {
			out.RoomType = str
		}
	case FieldAmenities:
		list, ok := value.([]string)
		if !ok {
			return s, serr.New(fmt.Sprintf("%s requires a string list", field))
		}
		out.Amenities = append([]string{}, list...)
	default:
		return s, serr.New(fmt.Sprintf("unknown filter field: %s", field))
	}
	return out, nil
}

// FilterDraft is the working copy an open overlay edits.
type FilterDraft struct {
	PriceRange   PriceRange `json:"priceRange"`
	PropertyType string     `json:"propertyType"`
	RoomType     string     `json:"roomType"`
	Amenities    []string   `json:"amenities"`
}

// DefaultFilterDraft is the state Clear resets to.
func DefaultFilterDraft() FilterDraft {
	return FilterDraft{
		PriceRange: DefaultPriceRange(),
		Amenities:  []string{},
	}
}

// DraftFromSelection derives a complete draft from a selection. A missing,
// zero or non-numeric price bound falls back to its slider default; a nil
// selection yields the defaults.
func DraftFromSelection(sel *FilterSelection) FilterDraft {
	d := DefaultFilterDraft()
	if sel == nil {
		return d
	}
	if sel.PriceRange != nil {
		if n, ok := sel.PriceRange.Min.Int(); ok && n != 0 {
			d.PriceRange.Min = ValidPrice(n)
		}
		if n, ok := sel.PriceRange.Max.Int(); ok && n != 0 {
			d.PriceRange.Max = ValidPrice(n)
		}
	}
	d.PropertyType = sel.PropertyType
	d.RoomType = sel.RoomType
	d.Amenities = append(d.Amenities, sel.Amenities...)
	return d
}

// Clone returns a deep copy.
func (d FilterDraft) Clone() FilterDraft {
	out := d
	out.Amenities = append([]string{}, d.Amenities...)
	return out
}

// HasAmenity reports whether v is selected.
func (d FilterDraft) HasAmenity(v string) bool {
	for _, a := range d.Amenities {
		if a == v {
			return true
		}
	}
	return false
}

// toggleSingle implements select-or-deselect for single choice fields.
func toggleSingle(current, v string) string {
	if current == v {
		return ""
	}
	return v
}

// toggleMember removes v from set if present, otherwise appends it.
// The input slice is never modified.
func toggleMember(set []string, v string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, item := range set {
		if item == v {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		out = append(out, v)
	}
	return out
}
