package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// SessionHeader lets non-browser clients carry their search session without cookies.
const SessionHeader = "X-Session-ID"

const sessionCookie = "session_id"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, "+SessionHeader)
	c.Response().SetHeader("Access-Control-Expose-Headers", SessionHeader)

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware resolves the search session id from the session header or
// cookie, issuing a new one when neither is present.
func SessionMiddleware(c rweb.Context) error {
	sessionID := headerValue(c.Request(), SessionHeader)

	if sessionID == "" {
		if cookieValue, err := c.GetCookie(sessionCookie); err == nil && isValidSessionID(cookieValue) {
			sessionID = cookieValue
		}
	}

	if !isValidSessionID(sessionID) {
		sessionID = uuid.New().String()
		if err := c.SetCookie(sessionCookie, sessionID); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
	}

	c.Set("session_id", sessionID)
	c.Response().SetHeader(SessionHeader, sessionID)
	return c.Next()
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Material Icons come from Google Fonts
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'", // inline onclick handlers on the overlay
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
		"font-src 'self' https://fonts.gstatic.com",
		"img-src 'self' data:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}

// headerValue looks up a request header ignoring case; clients and proxies
// differ on X-Session-ID vs X-Session-Id.
func headerValue(req rweb.ItfRequest, key string) string {
	for _, h := range req.Headers() {
		if strings.EqualFold(h.Key, key) {
			return h.Value
		}
	}
	return ""
}

func isValidSessionID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
