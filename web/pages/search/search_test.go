package search

import (
	"strings"
	"testing"

	"gostays/models"
)

// TestFilterOverlayDefaults verifies a fresh draft renders every section with nothing selected
func TestFilterOverlayDefaults(t *testing.T) {
	html := RenderFilterOverlay(models.DefaultFilterDraft())

	for _, want := range []string{
		"Filters", "Apply Filters", "Close", "Clear",
		"Price range:", "Property Type:", "Room Type:", "Amenities",
		`id="price-slider-min"`, `id="price-slider-max"`,
		`value="600"`, `value="30000"`,
		"filters.apply()", "filters.cancel()", "filters.clear()",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("overlay should contain %q", want)
		}
	}

	if strings.Contains(html, "selectable-box selected") {
		t.Error("no option box should be selected for the default draft")
	}
	if strings.Contains(html, `checked="checked"`) {
		t.Error("no amenity should be checked for the default draft")
	}

	for _, opt := range models.AmenityOptions() {
		if !strings.Contains(html, opt.Label) {
			t.Errorf("overlay should list amenity %q", opt.Label)
		}
	}
}

// TestFilterOverlayReflectsDraft verifies selections show up in the markup
func TestFilterOverlayReflectsDraft(t *testing.T) {
	d := models.DefaultFilterDraft()
	d.PriceRange = models.PriceRange{Min: models.ValidPrice(1200), Max: models.ValidPrice(8000)}
	d.PropertyType = "Flat"
	d.RoomType = "Room"
	d.Amenities = []string{"Wifi", "Pool"}

	html := RenderFilterOverlay(d)

	if !strings.Contains(html, `value="1200"`) || !strings.Contains(html, `value="8000"`) {
		t.Error("price inputs should show the draft bounds")
	}
	if got := strings.Count(html, "selectable-box selected"); got != 2 {
		t.Errorf("expected 2 selected boxes, got %d", got)
	}
	if got := strings.Count(html, `checked="checked"`); got != 2 {
		t.Errorf("expected 2 checked amenities, got %d", got)
	}

	i := strings.Index(html, "selectable-box selected")
	if i < 0 || !strings.Contains(html[i:i+60], "Flat") {
		t.Error("the Flat box should carry the selected class")
	}
}

// TestFilterOverlayInvalidBound verifies an unparseable bound leaves its number input empty
func TestFilterOverlayInvalidBound(t *testing.T) {
	d := models.DefaultFilterDraft()
	d.PriceRange.Min = models.InvalidPrice("abc")

	html := RenderFilterOverlay(d)

	if strings.Contains(html, `value="abc"`) {
		t.Error("invalid min should render an empty number input")
	}
	if strings.Contains(html, "NaN") {
		t.Error("NaN should never reach the markup")
	}
}

func TestSliderValueClamps(t *testing.T) {
	cases := []struct {
		in       models.PriceBound
		fallback int
		want     string
	}{
		{models.ValidPrice(5000), models.PriceFloor, "5000"},
		{models.ValidPrice(10), models.PriceFloor, "600"},
		{models.ValidPrice(99999), models.PriceCeiling, "30000"},
		{models.InvalidPrice("x"), models.PriceCeiling, "30000"},
	}
	for _, c := range cases {
		if got := sliderValue(c.in, c.fallback); got != c.want {
			t.Errorf("sliderValue(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestJSString(t *testing.T) {
	if got := jsString(`Guest House`); got != `'Guest House'` {
		t.Errorf("unexpected quoting: %s", got)
	}
	if got := jsString(`it's`); got != `'it\'s'` {
		t.Errorf("quote should be escaped: %s", got)
	}
}

// TestPageRendersListingsAndOverlay verifies the full page wiring
func TestPageRendersListingsAndOverlay(t *testing.T) {
	listings := []models.Listing{
		{GUID: "g1", Title: "Lakeside cottage", Price: 4500},
		{GUID: "g2", Title: "Budget bunk", Price: 650},
	}
	sel := models.FilterSelection{PropertyType: "House", Amenities: []string{"Wifi"}}

	p := NewPage(sel, listings)
	html := p.Render()

	for _, want := range []string{
		"<html", "Material+Icons", "/static/css/app.css", "/static/js/filters.js",
		"Lakeside cottage", "Budget bunk", "2 stays", `class="filter-badge"`,
		`id="overlay-host"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page should contain %q", want)
		}
	}
	if strings.Contains(html, `id="filter-overlay"`) {
		t.Error("closed overlay should not be rendered")
	}

	d := models.DraftFromSelection(&sel)
	p.Overlay = &d
	if !strings.Contains(p.Render(), `id="filter-overlay"`) {
		t.Error("open overlay should be rendered into the page")
	}
}

func TestListingGridEmpty(t *testing.T) {
	html := NewPage(models.FilterSelection{}, nil).Render()
	if !strings.Contains(html, "No stays match these filters.") {
		t.Error("empty results should show the empty state")
	}
}

func TestActiveFilterCount(t *testing.T) {
	def := models.DefaultPriceRange()
	if n := activeFilterCount(models.FilterSelection{PriceRange: &def}); n != 0 {
		t.Errorf("default price range should not count, got %d", n)
	}
	sel := models.FilterSelection{
		PriceRange: &models.PriceRange{Min: models.ValidPrice(1000), Max: def.Max},
		RoomType:   "Room",
		Amenities:  []string{"Tv", "Pool"},
	}
	if n := activeFilterCount(sel); n != 4 {
		t.Errorf("expected 4 active filters, got %d", n)
	}
}
