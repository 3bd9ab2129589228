package search

import (
	"strconv"
	"strings"

	"gostays/models"

	"github.com/rohanthewiz/element"
)

// ListingGrid shows the listings that match the applied selection
type ListingGrid struct {
	Listings []models.Listing
}

// Render implements the element.Component interface
func (g ListingGrid) Render(b *element.Builder) any {
	if len(g.Listings) == 0 {
		b.Div("class", "listing-grid", "id", "listing-grid").R(
			b.PClass("empty-state").T("No stays match these filters."),
		)
		return nil
	}

	b.Div("class", "listing-grid", "id", "listing-grid").R(
		b.Wrap(func() {
			for _, l := range g.Listings {
				out := l.ToOutput()
				b.Div("class", "listing-card", "data-guid", out.GUID).R(
					b.H3().T(out.Title),
					b.PClass("listing-meta").T(listingMeta(out)),
					b.PClass("listing-price").T("Rs. "+strconv.Itoa(out.Price)+" / night"),
					b.Wrap(func() {
						if len(out.Amenities) > 0 {
							b.PClass("listing-amenities").T(strings.Join(out.Amenities, " · "))
						}
					}),
				)
			}
		}),
	)
	return nil
}

func listingMeta(out models.ListingOutput) string {
	var parts []string
	for _, s := range []string{out.City, out.PropertyType, out.RoomType} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}
