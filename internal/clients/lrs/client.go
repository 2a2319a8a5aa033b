package lrs

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "net/http"
  "net/url"
  "time"

  "github.com/openlearn/pulse-backend/internal/pkg/httpx"
  "github.com/openlearn/pulse-backend/internal/pkg/logger"
  "github.com/openlearn/pulse-backend/internal/types"
)

// ErrEventSourceUnavailable marks a transient backend failure of the event
// store. Callers do not get partial results; retry policy lives here, not in
// the indicator core.
var ErrEventSourceUnavailable = errors.New("event source unavailable")

// Client reads xAPI statements from a Learning Record Store.
type Client interface {
  // ReadStatements returns all statements whose object is the given
  // activity, emitted strictly before the until cutoff.
  ReadStatements(ctx context.Context, activityIRI string, until time.Time) ([]types.Statement, error)
}

type Config struct {
  BaseURL      string
  Username     string
  Password     string
  Timeout      time.Duration
  MaxRetries   int
  RetryBackoff time.Duration
}

type client struct {
  log  *logger.Logger
  cfg  Config
  http *http.Client
}

func NewClient(baseLog *logger.Logger, cfg Config) (Client, error) {
  if cfg.BaseURL == "" {
    return nil, fmt.Errorf("missing LRS base URL")
  }
  if cfg.Timeout <= 0 {
    cfg.Timeout = 30 * time.Second
  }
  if cfg.MaxRetries < 0 {
    cfg.MaxRetries = 0
  }
  if cfg.RetryBackoff <= 0 {
    cfg.RetryBackoff = time.Second
  }
  return &client{
    log:  baseLog.With("client", "LRSClient"),
    cfg:  cfg,
    http: &http.Client{Timeout: cfg.Timeout},
  }, nil
}

type statementsResponse struct {
  Statements []types.Statement `json:"statements"`
  More       string            `json:"more,omitempty"`
}

func (c *client) ReadStatements(ctx context.Context, activityIRI string, until time.Time) ([]types.Statement, error) {
  query := url.Values{}
  query.Set("activity", activityIRI)
  query.Set("until", until.UTC().Format(time.RFC3339))
  endpoint := c.cfg.BaseURL + "/xAPI/statements?" + query.Encode()

  var lastErr error
  backoff := c.cfg.RetryBackoff
  for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
    if attempt > 0 {
      select {
      case <-ctx.Done():
        return nil, fmt.Errorf("read statements: %w", ctx.Err())
      case <-time.After(httpx.JitterSleep(backoff)):
      }
    }

    statements, retryAfter, retryable, err := c.readOnce(ctx, endpoint)
    if err == nil {
      return statements, nil
    }
    lastErr = err
    if !retryable {
      break
    }
    backoff = retryAfter
    c.log.Warn("statement fetch failed, retrying", "activity", activityIRI, "attempt", attempt+1, "error", err)
  }
  return nil, fmt.Errorf("read statements for %s: %w: %w", activityIRI, ErrEventSourceUnavailable, lastErr)
}

func (c *client) readOnce(ctx context.Context, endpoint string) ([]types.Statement, time.Duration, bool, error) {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
  if err != nil {
    return nil, 0, false, err
  }
  req.Header.Set("X-Experience-API-Version", "1.0.3")
  req.Header.Set("Content-Type", "application/json")
  if c.cfg.Username != "" {
    req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
  }

  resp, err := c.http.Do(req)
  if err != nil {
    return nil, c.cfg.RetryBackoff, true, err
  }
  defer resp.Body.Close()

  if resp.StatusCode != http.StatusOK {
    retryAfter := httpx.RetryAfterDuration(resp, c.cfg.RetryBackoff, 30*time.Second)
    return nil, retryAfter, httpx.IsRetryableStatus(resp.StatusCode), fmt.Errorf("lrs returned status %d", resp.StatusCode)
  }

  var payload statementsResponse
  if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
    return nil, 0, false, fmt.Errorf("decode statements response: %w", err)
  }
  return payload.Statements, 0, false, nil
}
