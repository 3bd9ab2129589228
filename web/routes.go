package web

import (
	"gostays/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server) {
	// Page routes - HTML responses
	s.Get("/", api.SearchPage)

	// Filter catalogs and the applied selection
	s.Get("/api/v1/filters/options", api.GetFilterOptions)
	s.Get("/api/v1/filters", api.GetAppliedFilters)

	// Filter overlay: open, read, edit, then apply or cancel
	s.Post("/api/v1/filters/overlay", api.OpenFilterOverlay)
	s.Get("/api/v1/filters/overlay", api.GetFilterDraft)
	s.Post("/api/v1/filters/overlay/price", api.SetPriceRange)
	s.Post("/api/v1/filters/overlay/price/min", api.SetMinPrice)
	s.Post("/api/v1/filters/overlay/price/max", api.SetMaxPrice)
	s.Post("/api/v1/filters/overlay/property-type", api.TogglePropertyType)
	s.Post("/api/v1/filters/overlay/room-type", api.ToggleRoomType)
	s.Post("/api/v1/filters/overlay/amenities", api.ToggleAmenity)
	s.Post("/api/v1/filters/overlay/clear", api.ClearFilters)
	s.Post("/api/v1/filters/overlay/apply", api.ApplyFilters)
	s.Post("/api/v1/filters/overlay/cancel", api.CancelFilters)

	// Listings
	s.Get("/api/v1/listings", api.SearchListings)
	s.Get("/api/v1/listings/:guid", api.GetListing)
	s.Post("/api/v1/listings", api.CreateListing)

	s.Get("/health", api.HealthCheck)
}
