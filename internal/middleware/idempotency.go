package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyCacheKey = "idempotency_cache_key"
	idempotencyLockKey  = "idempotency_lock_key"
	idempotencyTTL      = 24 * time.Hour
)

// Idempotency mencegah bulk action (bulk generate slip, simpan batch absensi)
// dieksekusi dua kali untuk Idempotency-Key yang sama.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		// 1. Sudah pernah sukses: kembalikan response lama
		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replay", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		// 2. ATOMIC LOCK (SetNX), expiry pendek supaya lock hilang kalau server crash
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", 30*time.Second).Result()
		if err == nil && !isNew {
			abortWith(c, apperror.ErrRequestInFlight)
			return
		}

		c.Set(idempotencyCacheKey, cacheKey)
		c.Set(idempotencyLockKey, lockKey)

		c.Next()

		_ = rdb.Del(ctx, lockKey).Err()
	}
}

// RememberIdempotentResponse dipanggil handler setelah sukses agar retry dengan key sama
// mendapat hasil yang sama.
func RememberIdempotentResponse(c *gin.Context, rdb *redis.Client, payload any) {
	if rdb == nil {
		return
	}
	cacheKey := c.GetString(idempotencyCacheKey)
	if cacheKey == "" {
		return
	}
	if raw, err := json.Marshal(payload); err == nil {
		_ = rdb.Set(c.Request.Context(), cacheKey, raw, idempotencyTTL).Err()
	}
}
