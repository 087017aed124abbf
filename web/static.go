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

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="40" fill="#2f5d8a"/><path d="M250 90 L440 180 L250 270 L60 180 Z" fill="white" fill-opacity=".9"/><rect x="130" y="230" width="240" height="110" rx="10" fill="white" fill-opacity=".75"/><text x="250" y="455" font-family="Arial,sans-serif" font-weight="900" font-size="110" fill="white" text-anchor="middle">US</text></svg>`

// Cache lifetimes for static responses. Pages reference app.css and app.js
// with a ?v= query that is bumped on every change.
const (
	cacheVersioned   = "public, max-age=31536000, immutable"
	cacheUnversioned = "public, max-age=3600"
)

// staticTypes lists the content types of the embedded asset kinds.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "application/javascript; charset=utf-8",
}

// SetupStaticFiles serves the favicon and the embedded stylesheet and script.
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
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

		contentType, ok := staticTypes[path.Ext(name)]
		if !ok {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		content, err := fs.ReadFile(staticFS, name)
		if err != nil {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		c.Response().SetHeader("Content-Type", contentType)
		c.Response().SetHeader("Cache-Control", cacheControl(c.Request().QueryParam("v")))
		return c.Bytes(content)
	})
}

func cacheControl(version string) string {
	if version != "" {
		return cacheVersioned
	}
	return cacheUnversioned
}
