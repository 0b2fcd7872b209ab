// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for ticket issuance. Kiosks on
// flaky venue networks retry POST /tickets; without deduplication every
// retry would mint a fresh number and the holder would walk away with two
// tickets. Clients send an Idempotency-Key header scoped by their
// X-Client-ID; the middleware validates the key, stashes it in the context,
// and consults a lookup to flag requests that replay an already-issued
// ticket. Handlers stay in control of serving the stored result.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header kiosks use to deduplicate
// ticket issuance. The value must be stable across retries of the same
// semantic operation.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys for idempotency state, unexported and reached through the
// accessor helpers below.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: a stored result exists
	ctxKeyRateBypass = "rate.bypass" // bool: skip rate limiting for this request
)

// GetIdempotencyKey returns the validated idempotency key stored by
// IdempotencyValidator. The second return reports presence. Handlers should
// use this rather than re-reading the header.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether this request replays a previously completed
// issuance for the same (client, key) pair. Handlers serve the stored
// ticket instead of minting a new one.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation for IdempotencyValidator.
// TTL enforcement belongs in the lookup, not here.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Nil means the conservative
	// token pattern ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyLookup answers whether a still-valid stored result exists for
// (clientID, key) at the given time. Return an error only for lookup
// failures; lookup errors never block normal processing.
type IdempotencyLookup func(ctx context.Context, clientID, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header when present,
// stashes the key in the context, and marks replays detected via lookup so
// that handlers (IsReplay) and the rate limiter (IsRateBypass) can react.
//
//   - Absent header: no-op.
//   - Invalid header: 400 with a compact error body, chain aborted.
//   - Replay detected: replay and rate-bypass flags set, chain continues.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			client := clientIDFromCtx(c)
			now := time.Now().UTC()

			if exists, _ := lookup(c.Request.Context(), client, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

// clientIDFromCtx extracts the kiosk identifier: the "clientID" context
// value when set by upstream middleware, then the X-Client-ID header, then
// "default-kiosk" for single-terminal deployments.
func clientIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get("clientID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if h := c.GetHeader("X-Client-ID"); h != "" {
		return h
	}
	return "default-kiosk"
}
