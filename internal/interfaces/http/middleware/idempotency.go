package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"smart-upi.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware ensures that the same request is not processed twice.
// Requests without an Idempotency-Key header pass through untouched, as do
// all requests when Redis is unavailable.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || redis.GetClient() == nil {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.Request.Method, c.Request.URL.Path, key)
		ctx := c.Request.Context()

		if val, err := redis.Get(ctx, storageKey); err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"message": "request already in progress",
				})
				return
			}
			c.Header("X-Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json", []byte(val))
			c.Abort()
			return
		}

		acquired, err := redis.SetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			// Redis unreachable or lost the race; let the engine's own
			// idempotence handle duplicates.
			c.Next()
			return
		}

		w := responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redis.Set(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			_ = redis.Del(ctx, storageKey)
		}
	}
}
