// Package search renders the listing search page and its filter overlay.
package search

import (
	"strconv"

	"gostays/models"

	"github.com/rohanthewiz/element"
)

// Page is the search page: a toolbar, the matching listings, and the
// filter overlay when the session has it open.
type Page struct {
	Title     string
	Selection models.FilterSelection
	Listings  []models.Listing
	Overlay   *models.FilterDraft // nil when the overlay is closed
}

// NewPage creates a search page for the given applied selection and results
func NewPage(sel models.FilterSelection, listings []models.Listing) Page {
	return Page{
		Title:     "GoStays - Find a place to stay",
		Selection: sel,
		Listings:  listings,
	}
}

// Render generates the complete HTML for the search page
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p Page) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(p.Title),
		b.Link("rel", "stylesheet", "href", "https://fonts.googleapis.com/icon?family=Material+Icons"),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
	)
}

func (p Page) renderBody(b *element.Builder) any {
	return b.Body().R(
		b.Div("class", "app-container", "id", "app").R(
			b.HeaderClass("toolbar").R(
				b.DivClass("toolbar-left").R(
					b.H1().T("GoStays"),
					b.Span("class", "view-count", "id", "result-count").T(resultCount(len(p.Listings))),
				),
				b.DivClass("toolbar-right").R(
					b.Button("class", "btn btn-primary", "id", "btn-filters", "onclick", "filters.open()").R(
						b.SpanClass("material-icons").T("tune"),
						b.Span().T(" Filters"),
						b.Wrap(func() {
							if n := activeFilterCount(p.Selection); n > 0 {
								b.SpanClass("filter-badge").T(strconv.Itoa(n))
							}
						}),
					),
				),
			),
			b.Main("class", "app-main").R(
				element.RenderComponents(b, ListingGrid{Listings: p.Listings}),
			),
		),

		// Overlay host; filters.js swaps rendered overlay markup in here
		b.Div("id", "overlay-host").R(
			b.Wrap(func() {
				if p.Overlay != nil {
					element.RenderComponents(b, FilterOverlay{Draft: *p.Overlay})
				}
			}),
		),

		b.Script("src", "/static/js/filters.js?v=1").R(),
	)
}

// activeFilterCount counts the applied filters that narrow results.
func activeFilterCount(sel models.FilterSelection) (n int) {
	if pr := sel.PriceRange; pr != nil {
		if def := models.DefaultPriceRange(); pr.Min != def.Min || pr.Max != def.Max {
			n++
		}
	}
	if sel.PropertyType != "" {
		n++
	}
	if sel.RoomType != "" {
		n++
	}
	return n + len(sel.Amenities)
}

func resultCount(n int) string {
	if n == 1 {
		return "1 stay"
	}
	return strconv.Itoa(n) + " stays"
}
