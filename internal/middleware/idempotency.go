package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dayflow-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

type cachedResponse struct {
	Status      int             `json:"status"`
	Fingerprint string          `json:"fingerprint"`
	Body        json.RawMessage `json:"body"`
}

type idempotencyConfig struct {
	redacted map[string]struct{}
}

type IdempotencyOption func(*idempotencyConfig)

// WithRedactedFields drops the named JSON keys, at any depth, from the
// response before it is cached. Replays return the body without them.
func WithRedactedFields(fields ...string) IdempotencyOption {
	return func(cfg *idempotencyConfig) {
		for _, f := range fields {
			cfg.redacted[f] = struct{}{}
		}
	}
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated POST carrying the
// same Idempotency-Key and request body. A key reused with a different body
// is rejected with 422. Only 2xx responses are stored.
func Idempotency(rdb *redis.Client, opts ...IdempotencyOption) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	cfg := idempotencyConfig{redacted: map[string]struct{}{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		fingerprint, err := requestFingerprint(c)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Request body could not be read", nil)
			c.Abort()
			return
		}

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				if cached.Fingerprint != fingerprint {
					response.Error(c, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED",
						"Idempotency key was already used with a different request body", nil)
					c.Abort()
					return
				}
				c.Header("Idempotent-Replayed", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
			log.Warn("discarding unreadable cached response", zap.String("key", cacheKey))
		} else if !errors.Is(err, redis.Nil) {
			// Redis unavailable: serve the request without the guarantee.
			log.Warn("idempotency cache lookup failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}
		defer func() {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				log.Warn("failed to release idempotency lock", zap.String("key", lockKey), zap.Error(err))
			}
		}()

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		body, err := redact(writer.body.Bytes(), cfg.redacted)
		if err != nil {
			log.Warn("response not cached", zap.String("key", cacheKey), zap.Error(err))
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Fingerprint: fingerprint, Body: body})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
			log.Warn("failed to store idempotent response", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}

// requestFingerprint hashes the request body and puts it back for the handler.
func requestFingerprint(c *gin.Context) (string, error) {
	var body []byte
	if c.Request.Body != nil {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		body = b
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

func redact(body []byte, fields map[string]struct{}) ([]byte, error) {
	if len(fields) == 0 {
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return json.Marshal(dropKeys(doc, fields))
}

func dropKeys(v any, fields map[string]struct{}) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if _, ok := fields[k]; ok {
				delete(node, k)
				continue
			}
			node[k] = dropKeys(child, fields)
		}
	case []any:
		for i, child := range node {
			node[i] = dropKeys(child, fields)
		}
	}
	return v
}
