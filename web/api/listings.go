package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gostays/metrics"
	"gostays/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// SearchListings handles GET /api/v1/listings
// Returns the listings matching the session's applied filters.
//
// Query parameters:
//   - f: a selection token (as returned by apply) to search with instead
//   - limit, offset: pagination over the sorted results
func SearchListings(ctx rweb.Context) error {
	limit, offset := 0, 0

	if limitStr := ctx.Request().QueryParam("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit < 0 {
			return writeError(ctx, http.StatusBadRequest, "invalid limit parameter")
		}
		limit = parsedLimit
	}

	if offsetStr := ctx.Request().QueryParam("offset"); offsetStr != "" {
		parsedOffset, err := strconv.Atoi(offsetStr)
		if err != nil || parsedOffset < 0 {
			return writeError(ctx, http.StatusBadRequest, "invalid offset parameter")
		}
		offset = parsedOffset
	}

	sel, ok := selectionFor(ctx)
	if !ok {
		return writeError(ctx, http.StatusBadRequest, "invalid filter token")
	}

	start := time.Now()
	listings, err := models.SearchListings(sel)
	metrics.ObserveSearch(start)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to search listings"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	if offset >= len(listings) {
		listings = []models.Listing{}
	} else if offset > 0 {
		listings = listings[offset:]
	}
	if limit > 0 && limit < len(listings) {
		listings = listings[:limit]
	}

	outputs := make([]models.ListingOutput, len(listings))
	for i, l := range listings {
		outputs[i] = l.ToOutput()
	}
	return writeSuccess(ctx, http.StatusOK, outputs)
}

// GetListing handles GET /api/v1/listings/:guid
func GetListing(ctx rweb.Context) error {
	guid := ctx.Request().Param("guid")
	if guid == "" {
		return writeError(ctx, http.StatusBadRequest, "guid is required")
	}

	listing, err := models.GetListing(guid)
	if err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			return writeError(ctx, http.StatusNotFound, "listing not found")
		}
		logger.LogErr(serr.Wrap(err, "failed to get listing"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	return writeSuccess(ctx, http.StatusOK, listing.ToOutput())
}

// CreateListing handles POST /api/v1/listings
func CreateListing(ctx rweb.Context) error {
	var input models.ListingInput

	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	listing, err := models.CreateListing(input)
	if err != nil {
		if errors.Is(err, models.ErrInvalidListing) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		logger.LogErr(serr.Wrap(err, "failed to create listing"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "failed to create listing")
	}

	logger.Info("Listing created", "guid", listing.GUID, "title", listing.Title)
	return writeSuccess(ctx, http.StatusCreated, listing.ToOutput())
}

// selectionFor returns the selection named by the f query parameter, or the
// session's applied selection when there is none.
func selectionFor(ctx rweb.Context) (models.FilterSelection, bool) {
	token := ctx.Request().QueryParam("f")
	if token == "" {
		return sessionFor(ctx).Selection(), true
	}
	sel, err := models.DecodeSelectionToken(token)
	if err != nil {
		logger.LogErr(err, "bad filter token")
		return models.FilterSelection{}, false
	}
	return sel, true
}
