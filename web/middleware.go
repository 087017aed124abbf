package web

import (
	"net/http"
	"strings"
	"time"

	"unisearch/models"
	"unisearch/web/api"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"golang.org/x/time/rate"
)

const (
	// SessionCookieName holds the signed session token
	SessionCookieName = "unisearch_session"

	// SessionHeaderName carries the same token for clients without a cookie jar
	SessionHeaderName = "X-Session-Token"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, Accept, "+SessionHeaderName)
	c.Response().SetHeader("Access-Control-Expose-Headers", SessionHeaderName)

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware attaches the caller's session id to the context.
// The id travels in a signed token so one browser cannot step into another
// browser's search. Missing or invalid tokens start a fresh session.
func SessionMiddleware(tokens *models.SessionTokens) rweb.Handler {
	return func(c rweb.Context) error {
		token, err := c.GetCookie(SessionCookieName)
		if err != nil || token == "" {
			token = c.Request().Header(SessionHeaderName)
		}

		sessionID := ""
		if token != "" {
			if id, err := tokens.Validate(token); err == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = models.NewSessionID()
			signed, err := tokens.Issue(sessionID)
			if err != nil {
				logger.LogErr(err, "failed to issue session token")
			} else {
				if err := c.SetCookie(SessionCookieName, signed); err != nil {
					logger.LogErr(err, "failed to set session cookie")
				}
				c.Response().SetHeader(SessionHeaderName, signed)
			}
			logger.Debug("New session", "session_id", sessionID)
		}

		c.Set(api.SessionIDKey, sessionID)
		return c.Next()
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Everything is served from this origin; card links leave it via plain anchors
	csp := []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: blob:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RateLimitMiddleware limits each client to requestsPerMinute.
// A value of zero or less disables limiting.
func RateLimitMiddleware(requestsPerMinute int, tokens *models.SessionTokens) rweb.Handler {
	if requestsPerMinute <= 0 {
		return func(c rweb.Context) error { return c.Next() }
	}

	every := time.Minute / time.Duration(requestsPerMinute)
	// Idle visitors fall out after a few minutes
	visitors := expirable.NewLRU[string, *rate.Limiter](10000, nil, 5*time.Minute)

	return func(c rweb.Context) error {
		key := rateKey(c, tokens)

		lim, ok := visitors.Get(key)
		if !ok {
			lim = rate.NewLimiter(rate.Every(every), requestsPerMinute)
			visitors.Add(key, lim)
		}

		if !lim.Allow() {
			logger.Info("Rate limit exceeded", "client", key)
			c.SetStatus(http.StatusTooManyRequests)
			return nil
		}

		return c.Next()
	}
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"session_id", c.Get(api.SessionIDKey),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}

// rateKey identifies the caller for rate limiting: the proxy-reported
// address when present, otherwise the session of a valid token. A client with
// neither shares the "unknown" bucket until it holds a token.
func rateKey(c rweb.Context, tokens *models.SessionTokens) string {
	ip := c.Request().Header("X-Forwarded-For")
	if ip != "" {
		// first hop is the client
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return "ip:" + strings.TrimSpace(ip)
	}
	if ip = c.Request().Header("X-Real-IP"); ip != "" {
		return "ip:" + ip
	}

	token, err := c.GetCookie(SessionCookieName)
	if err != nil || token == "" {
		token = c.Request().Header(SessionHeaderName)
	}
	if token != "" {
		if id, err := tokens.Validate(token); err == nil {
			return "session:" + id
		}
	}
	return "unknown"
}
