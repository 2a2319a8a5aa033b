package httpx

import (
  "math/rand"
  "net/http"
  "strconv"
  "strings"
  "time"
)

// IsRetryableStatus reports whether a response status is worth retrying:
// timeouts, throttling and server-side failures.
func IsRetryableStatus(code int) bool {
  if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
    return true
  }
  return code >= 500 && code <= 599
}

// RetryAfterDuration honors a Retry-After header when present, clamped to max.
func RetryAfterDuration(resp *http.Response, fallback, max time.Duration) time.Duration {
  sleepFor := fallback
  if resp != nil {
    if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
      if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
        sleepFor = time.Duration(secs) * time.Second
      }
    }
  }
  if max > 0 && sleepFor > max {
    sleepFor = max
  }
  return sleepFor
}

// JitterSleep spreads a backoff duration by ±20% to avoid retry lockstep.
func JitterSleep(base time.Duration) time.Duration {
  if base <= 0 {
    return 0
  }
  delta := base.Seconds() * 0.2
  low := base.Seconds() - delta
  if low < 0 {
    low = 0
  }
  high := base.Seconds() + delta
  v := low + rand.Float64()*(high-low)
  return time.Duration(v * float64(time.Second))
}
