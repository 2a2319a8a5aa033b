package redis

import (
  "context"
  "crypto/sha256"
  "encoding/hex"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/openlearn/pulse-backend/internal/pkg/logger"
)

// IndicatorCache memoizes computed indicator payloads. Indicators are pure
// functions of their inputs, so caching is safe and strictly optional: every
// caller must behave identically with a nil cache.
type IndicatorCache interface {
  GetJSON(ctx context.Context, key string, dest any) (bool, error)
  SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
  Close() error
}

type indicatorCache struct {
  log *logger.Logger
  rdb *goredis.Client
}

func NewIndicatorCache(baseLog *logger.Logger, addr string) (IndicatorCache, error) {
  addr = strings.TrimSpace(addr)
  if addr == "" {
    return nil, fmt.Errorf("missing redis address")
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &indicatorCache{
    log: baseLog.With("client", "IndicatorCache"),
    rdb: rdb,
  }, nil
}

func (c *indicatorCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
  raw, err := c.rdb.Get(ctx, key).Bytes()
  if err == goredis.Nil {
    return false, nil
  }
  if err != nil {
    return false, fmt.Errorf("cache get: %w", err)
  }
  if err := json.Unmarshal(raw, dest); err != nil {
    // A stale or foreign payload is as good as a miss.
    c.log.Warn("cache payload could not be decoded, ignoring", "key", key, "error", err)
    return false, nil
  }
  return true, nil
}

func (c *indicatorCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
  raw, err := json.Marshal(value)
  if err != nil {
    return fmt.Errorf("cache encode: %w", err)
  }
  if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
    return fmt.Errorf("cache set: %w", err)
  }
  return nil
}

func (c *indicatorCache) Close() error {
  return c.rdb.Close()
}

// Key hashes the identifying parts of an indicator request into a stable
// cache key.
func Key(parts ...string) string {
  digest := sha256.Sum256([]byte(strings.Join(parts, "|")))
  return "pulse:indicator:" + hex.EncodeToString(digest[:])
}
