package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig drives the Cache-Control header on GET responses.
type CacheConfig struct {
	MaxAge               int
	Private              bool
	NoStore              bool
	MustRevalidate       bool
	NoCache              bool
	StaleWhileRevalidate int
	Vary                 []string
}

// DefaultCacheConfig fits the directory data, which only changes on reseed.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:               60,
		StaleWhileRevalidate: 30,
		Vary:                 []string{"Accept", "Origin"},
	}
}

func Cache(config CacheConfig) gin.HandlerFunc {
	header := cacheControl(config)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		if header != "" {
			c.Header("Cache-Control", header)
		}
		if len(config.Vary) > 0 {
			c.Header("Vary", strings.Join(config.Vary, ", "))
		}

		c.Writer = &cacheWriter{ResponseWriter: c.Writer}
		c.Next()
	}
}

// cacheWriter downgrades Cache-Control to no-store once an error status is
// set, so failed reads never reach shared caches.
type cacheWriter struct {
	gin.ResponseWriter
}

func (w *cacheWriter) WriteHeader(code int) {
	if code >= http.StatusBadRequest && !w.Written() {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.ResponseWriter.WriteHeader(code)
}

func cacheControl(config CacheConfig) string {
	directives := make([]string, 0, 5)

	if config.Private {
		directives = append(directives, "private")
	} else {
		directives = append(directives, "public")
	}
	if config.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	}
	if config.NoStore {
		directives = append(directives, "no-store")
	}
	if config.NoCache {
		directives = append(directives, "no-cache")
	}
	if config.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	if config.StaleWhileRevalidate > 0 {
		directives = append(directives, "stale-while-revalidate="+strconv.Itoa(config.StaleWhileRevalidate))
	}

	return strings.Join(directives, ", ")
}
