package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed all:static
var staticFiles embed.FS

// assetTypes lists what the search page loads from /static/.
var assetTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "application/javascript; charset=utf-8",
}

// Two white bars and "GS" on the brand red
const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="40" fill="#e0565b"/><rect x="40" y="200" width="90" height="25" rx="12.5" fill="white"/><rect x="40" y="270" width="60" height="25" rx="12.5" fill="white" fill-opacity=".8"/><text x="310" y="290" font-family="Arial,sans-serif" font-weight="900" font-size="170" fill="white" text-anchor="middle">GS</text></svg>`

// SetupStaticFiles serves the embedded stylesheet and script, plus an inline favicon.
func SetupStaticFiles(s *rweb.Server) {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		name := strings.TrimPrefix(c.Request().Path(), "/static/")
		contentType, ok := assetTypes[path.Ext(name)]
		if !ok {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		content, err := fs.ReadFile(assets, name)
		if err != nil {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		c.Response().SetHeader("Content-Type", contentType)
		// Pages bump ?v= on change
		c.Response().SetHeader("Cache-Control", "public, max-age=3600")
		return c.Bytes(content)
	})
}
