package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache memoizes successful GET responses for a short TTL. It is
// applied only to the report routes, which aggregate whole tables and
// tolerate slightly stale answers.
type ResponseCache struct {
	store *gocache.Cache
}

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

func NewResponseCache(defaultTTL, cleanupInterval time.Duration) *ResponseCache {
	return &ResponseCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

type cacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache serves a stored response when one exists for the request URL and
// records the response otherwise.
func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, ok := rc.store.Get(key); ok {
			resp := v.(cachedResponse)
			c.Data(resp.status, resp.contentType, resp.body)
			c.Abort()
			return
		}

		w := &cacheWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status == http.StatusOK {
			rc.store.SetDefault(key, cachedResponse{
				status:      status,
				contentType: c.Writer.Header().Get("Content-Type"),
				body:        w.body.Bytes(),
			})
		}
	}
}
