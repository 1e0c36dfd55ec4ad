package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"inthehaus-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL = 30 * time.Second
)

// Idempotency replays the cached response for a repeated Idempotency-Key and
// rejects a duplicate that arrives while the first one is still running.
// Handlers store the response under IdempotencyCacheKey and release the lock
// via ReleaseIdempotency.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id_validated")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				log.Debug("idempotent replay", zap.String("key", cacheKey))
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Redis down: let the request through rather than block writes.
			log.Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, "PROCESSING", "Request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}

// StoreIdempotentResponse caches payload for 24h under the request's key.
func StoreIdempotentResponse(c *gin.Context, rdb *redis.Client, payload any) {
	if rdb == nil {
		return
	}
	key := c.GetString(IdempotencyCacheKey)
	if key == "" {
		return
	}
	if raw, err := json.Marshal(payload); err == nil {
		_ = rdb.Set(c.Request.Context(), key, raw, 24*time.Hour).Err()
	}
}

func ReleaseIdempotency(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if key := c.GetString(IdempotencyLockKey); key != "" {
		_ = rdb.Del(c.Request.Context(), key).Err()
	}
}
