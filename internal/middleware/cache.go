package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheHeader reports HIT or MISS on cacheable requests
const CacheHeader = "X-Cache"

// captureWriter copies the response body while forwarding it to the client
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache caches successful GET responses in Redis.
// Every successful write bumps a generation counter, so all earlier entries stop matching.
type ResponseCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	logger logrus.FieldLogger
}

// NewResponseCache creates a response cache over rdb
func NewResponseCache(rdb redis.Cmdable, ttl time.Duration, prefix string, logger logrus.FieldLogger) *ResponseCache {
	return &ResponseCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (rc *ResponseCache) generationKey() string {
	return rc.prefix + "generation"
}

func (rc *ResponseCache) generation(ctx context.Context) (int64, error) {
	gen, err := rc.rdb.Get(ctx, rc.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (rc *ResponseCache) key(generation int64, uri string) string {
	sum := sha1.Sum([]byte(uri))
	return fmt.Sprintf("%s%d:%x", rc.prefix, generation, sum[:])
}

// Invalidate drops every cached response
func (rc *ResponseCache) Invalidate(ctx context.Context) error {
	return rc.rdb.Incr(ctx, rc.generationKey()).Err()
}

// Middleware serves cached GET responses and invalidates the cache after successful writes.
// Redis failures are logged and the request is served uncached.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if c.Request.Method != http.MethodGet {
			c.Next()
			if status := c.Writer.Status(); status >= 200 && status < 300 {
				if err := rc.Invalidate(ctx); err != nil {
					rc.logger.WithError(err).Warn("Failed to invalidate response cache")
				}
			}
			return
		}

		gen, err := rc.generation(ctx)
		if err != nil {
			rc.logger.WithError(err).Warn("Response cache unavailable")
			c.Next()
			return
		}
		key := rc.key(gen, c.Request.URL.RequestURI())

		cached, err := rc.rdb.Get(ctx, key).Bytes()
		if err == nil {
			c.Header(CacheHeader, "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}
		if !errors.Is(err, redis.Nil) {
			rc.logger.WithError(err).Warn("Failed to read response cache")
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header(CacheHeader, "MISS")

		c.Next()

		if writer.Status() != http.StatusOK || writer.body.Len() == 0 {
			return
		}
		if err := rc.rdb.Set(ctx, key, writer.body.Bytes(), rc.ttl).Err(); err != nil {
			rc.logger.WithError(err).Warn("Failed to store response in cache")
		}
	}
}
