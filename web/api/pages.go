package api

import (
	"net/http"
	"time"

	"gostays/metrics"
	"gostays/models"
	"gostays/web/pages/search"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// SearchPage handles GET /
// Renders the listings for the session's applied filters. A ?f= selection
// token replaces the applied selection first, so a filtered search can be
// shared as a link.
func SearchPage(ctx rweb.Context) error {
	sess := sessionFor(ctx)

	if token := ctx.Request().QueryParam("f"); token != "" {
		sel, err := models.DecodeSelectionToken(token)
		if err != nil {
			logger.LogErr(err, "bad filter token on page load")
			ctx.SetStatus(http.StatusBadRequest)
			return ctx.WriteHTML("<h1>Invalid filter link</h1>")
		}
		sess.SetSelection(sel)
	}

	sel := sess.Selection()
	start := time.Now()
	listings, err := models.SearchListings(sel)
	metrics.ObserveSearch(start)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to search listings"), "database error")
		ctx.SetStatus(http.StatusInternalServerError)
		return ctx.WriteHTML("<h1>Something went wrong</h1>")
	}

	page := search.NewPage(sel, listings)
	if draft, err := sess.Draft(); err == nil {
		page.Overlay = &draft
	}
	return ctx.WriteHTML(page.Render())
}
