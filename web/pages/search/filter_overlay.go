package search

import (
	"strconv"
	"strings"

	"gostays/models"

	"github.com/rohanthewiz/element"
)

// FilterOverlay renders the filter modal for a draft.
// Every control posts its change back and the response replaces this markup.
type FilterOverlay struct {
	Draft models.FilterDraft
}

// RenderFilterOverlay renders the overlay on its own, for swapping into the page.
func RenderFilterOverlay(d models.FilterDraft) string {
	b := element.NewBuilder()
	element.RenderComponents(b, FilterOverlay{Draft: d})
	return b.String()
}

// Render implements the element.Component interface
func (f FilterOverlay) Render(b *element.Builder) any {
	b.Div("class", "modal-backdrop", "id", "filter-overlay").R(
		b.Div("class", "filter-modal-content").R(
			b.DivClass("modal-header").R(
				b.H2().T("Filters"),
				b.Button("class", "btn btn-outline-dark", "id", "filter-apply",
					"onclick", "filters.apply()").T("Apply Filters"),
				b.Button("class", "btn btn-close", "id", "filter-close",
					"onclick", "filters.cancel()").T("Close"),
			),
			b.DivClass("modal-filters-container").R(
				f.renderPriceSection(b),
				f.renderChoiceSection(b, "Property Type:", "property-type", models.PropertyTypeOptions(), f.Draft.PropertyType),
				f.renderChoiceSection(b, "Room Type:", "room-type", models.RoomTypeOptions(), f.Draft.RoomType),
				f.renderAmenitiesSection(b),
				b.DivClass("modal-footer").R(
					b.Button("class", "btn btn-secondary", "id", "filter-clear",
						"onclick", "filters.clear()").T("Clear"),
				),
			),
		),
	)
	return nil
}

// renderPriceSection shows the two-handle slider and the two number inputs.
func (f FilterOverlay) renderPriceSection(b *element.Builder) any {
	lo, hi := sliderValue(f.Draft.PriceRange.Min, models.PriceFloor), sliderValue(f.Draft.PriceRange.Max, models.PriceCeiling)
	floor, ceiling := strconv.Itoa(models.PriceFloor), strconv.Itoa(models.PriceCeiling)

	return b.Div("class", "filter-section", "id", "price-section").R(
		b.Label().T("Price range:"),
		b.DivClass("dual-range").R(
			b.Input("type", "range", "id", "price-slider-min", "min", floor, "max", ceiling,
				"step", "100", "value", lo, "onchange", "filters.slide()"),
			b.Input("type", "range", "id", "price-slider-max", "min", floor, "max", ceiling,
				"step", "100", "value", hi, "onchange", "filters.slide()"),
		),
		b.DivClass("range-inputs").R(
			b.Input("type", "number", "id", "price-min", "value", inputValue(f.Draft.PriceRange.Min),
				"onchange", "filters.typePrice('min', this.value)"),
			b.Span().T("-"),
			b.Input("type", "number", "id", "price-max", "value", inputValue(f.Draft.PriceRange.Max),
				"onchange", "filters.typePrice('max', this.value)"),
		),
	)
}

// renderChoiceSection shows a single-select group; clicking the selected box clears it.
func (f FilterOverlay) renderChoiceSection(b *element.Builder, title, kind string,
	opts []models.FilterOption, selected string) any {
	return b.Div("class", "filter-section", "id", kind+"-section").R(
		b.Label().T(title),
		b.DivClass("icon-box").R(
			b.Wrap(func() {
				for _, opt := range opts {
					class := "selectable-box"
					if opt.Value == selected {
						class += " selected"
					}
					b.Div("class", class, "data-value", opt.Value,
						"onclick", "filters.toggle('"+kind+"', "+jsString(opt.Value)+")").R(
						b.SpanClass("material-icons").T(opt.Icon),
						b.Span().T(opt.Label),
					)
				}
			}),
		),
	)
}

func (f FilterOverlay) renderAmenitiesSection(b *element.Builder) any {
	return b.Div("class", "filter-section", "id", "amenities-section").R(
		b.Label().T("Amenities"),
		b.DivClass("amenities-checkboxes").R(
			b.Wrap(func() {
				for _, opt := range models.AmenityOptions() {
					attrs := []string{"type", "checkbox", "value", opt.Value,
						"onchange", "filters.toggle('amenities', " + jsString(opt.Value) + ")"}
					if f.Draft.HasAmenity(opt.Value) {
						attrs = append(attrs, "checked", "checked")
					}
					b.DivClass("amenity-checkbox").R(
						b.Input(attrs...),
						b.SpanClass("material-icons amenitieslabel").T(opt.Icon),
						b.Span().T(opt.Label),
					)
				}
			}),
		),
	)
}

// sliderValue positions a slider handle; an invalid bound parks it at its end.
func sliderValue(p models.PriceBound, fallback int) string {
	n, ok := p.Int()
	if !ok {
		n = fallback
	}
	if n < models.PriceFloor {
		n = models.PriceFloor
	}
	if n > models.PriceCeiling {
		n = models.PriceCeiling
	}
	return strconv.Itoa(n)
}

// inputValue is what a number input shows; an invalid bound shows as empty.
func inputValue(p models.PriceBound) string {
	if !p.IsValid() {
		return ""
	}
	return p.String()
}

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
