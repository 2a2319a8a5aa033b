package services

import (
  "context"
  "fmt"
  "time"

  "golang.org/x/sync/errgroup"

  "github.com/openlearn/pulse-backend/internal/clients/lrs"
  "github.com/openlearn/pulse-backend/internal/clients/redis"
  "github.com/openlearn/pulse-backend/internal/indicators"
  "github.com/openlearn/pulse-backend/internal/pkg/logger"
  "github.com/openlearn/pulse-backend/internal/repos"
  "github.com/openlearn/pulse-backend/internal/types"
)

// IndicatorService computes the four course engagement indicators. Every
// computation is request-scoped and pure: statements are fetched fresh,
// nothing is shared between concurrent calls, and the cache only memoizes
// results that would be recomputed identically.
type IndicatorService interface {
  ComputeWindow(ctx context.Context, courseID string, until types.Date) (*types.SlidingWindow, error)
  ComputeCohort(ctx context.Context, courseID string, until types.Date, studentID string) (types.Cohort, error)
  ComputeScores(ctx context.Context, courseID string, until types.Date, studentID string, totals, average bool) (*types.Scores, error)
  ComputeGrades(ctx context.Context, courseID string, until types.Date, studentID string, average bool) (*types.Grades, error)
}

type IndicatorConfig struct {
  Thresholds        indicators.Thresholds
  PreferredLanguage string
  CacheTTL          time.Duration
  FetchConcurrency  int
}

type indicatorService struct {
  log       *logger.Logger
  expRepo   repos.ExperienceRepo
  lrsClient lrs.Client
  cache     redis.IndicatorCache
  cfg       IndicatorConfig
}

func NewIndicatorService(
  baseLog *logger.Logger,
  expRepo repos.ExperienceRepo,
  lrsClient lrs.Client,
  cache redis.IndicatorCache,
  cfg IndicatorConfig,
) IndicatorService {
  if cfg.Thresholds == (indicators.Thresholds{}) {
    cfg.Thresholds = indicators.DefaultThresholds()
  }
  if cfg.PreferredLanguage == "" {
    cfg.PreferredLanguage = "en-US"
  }
  if cfg.CacheTTL <= 0 {
    cfg.CacheTTL = 5 * time.Minute
  }
  if cfg.FetchConcurrency <= 0 {
    cfg.FetchConcurrency = 4
  }
  return &indicatorService{
    log:       baseLog.With("service", "IndicatorService"),
    expRepo:   expRepo,
    lrsClient: lrsClient,
    cache:     cache,
    cfg:       cfg,
  }
}

func (is *indicatorService) ComputeWindow(ctx context.Context, courseID string, until types.Date) (*types.SlidingWindow, error) {
  key := is.cacheKey("window", courseID, until, "", "")
  var cached types.SlidingWindow
  if is.fromCache(ctx, key, &cached) {
    return &cached, nil
  }

  events, err := is.loadEvents(ctx, courseID, until)
  if err != nil {
    return nil, err
  }
  window, err := indicators.ComputeSlidingWindow(events, until, is.cfg.Thresholds)
  if err != nil {
    return nil, err
  }
  is.toCache(ctx, key, window)
  return window, nil
}

func (is *indicatorService) ComputeCohort(ctx context.Context, courseID string, until types.Date, studentID string) (types.Cohort, error) {
  key := is.cacheKey("cohort", courseID, until, studentID, "")
  var cached types.Cohort
  if is.fromCache(ctx, key, &cached) {
    return cached, nil
  }

  events, err := is.loadEvents(ctx, courseID, until)
  if err != nil {
    return nil, err
  }
  window, err := is.windowFor(ctx, courseID, until, events)
  if err != nil {
    return nil, err
  }
  cohort := indicators.ProjectCohort(window, events, studentID)
  is.toCache(ctx, key, cohort)
  return cohort, nil
}

func (is *indicatorService) ComputeScores(ctx context.Context, courseID string, until types.Date, studentID string, totals, average bool) (*types.Scores, error) {
  key := is.cacheKey("scores", courseID, until, studentID, fmt.Sprintf("totals=%t,average=%t", totals, average))
  var cached types.Scores
  if is.fromCache(ctx, key, &cached) {
    return &cached, nil
  }

  events, err := is.loadEvents(ctx, courseID, until)
  if err != nil {
    return nil, err
  }
  window, err := is.windowFor(ctx, courseID, until, events)
  if err != nil {
    return nil, err
  }
  cohort := indicators.ProjectCohort(window, events, "")
  scores := indicators.ComposeScores(window, cohort, studentID, totals, average)
  is.toCache(ctx, key, scores)
  return scores, nil
}

func (is *indicatorService) ComputeGrades(ctx context.Context, courseID string, until types.Date, studentID string, average bool) (*types.Grades, error) {
  key := is.cacheKey("grades", courseID, until, studentID, fmt.Sprintf("average=%t", average))
  var cached types.Grades
  if is.fromCache(ctx, key, &cached) {
    return &cached, nil
  }

  events, err := is.loadEvents(ctx, courseID, until)
  if err != nil {
    return nil, err
  }
  window, err := is.windowFor(ctx, courseID, until, events)
  if err != nil {
    return nil, err
  }
  grades, err := indicators.ComposeGrades(window, events, studentID, average)
  if err != nil {
    return nil, err
  }
  is.toCache(ctx, key, grades)
  return grades, nil
}

// loadEvents resolves the course actions, fetches their statements from the
// LRS and normalizes the concatenated set. Fetches run concurrently but the
// result keeps the action order so downstream grouping is deterministic.
func (is *indicatorService) loadEvents(ctx context.Context, courseID string, until types.Date) ([]types.Event, error) {
  actions, err := is.expRepo.GetCourseActions(ctx, nil, courseID)
  if err != nil {
    return nil, err
  }

  perAction := make([][]types.Statement, len(actions))
  group, groupCtx := errgroup.WithContext(ctx)
  group.SetLimit(is.cfg.FetchConcurrency)
  for i, action := range actions {
    group.Go(func() error {
      statements, err := is.lrsClient.ReadStatements(groupCtx, action.IRI, until.Time)
      if err != nil {
        return err
      }
      perAction[i] = statements
      return nil
    })
  }
  if err := group.Wait(); err != nil {
    return nil, err
  }

  var statements []types.Statement
  for _, batch := range perAction {
    statements = append(statements, batch...)
  }
  return indicators.NormalizeStatements(statements, is.cfg.PreferredLanguage)
}

// windowFor computes the sliding window over already loaded events, going
// through the cache keyed like ComputeWindow so dependent indicators reuse a
// memoized result.
func (is *indicatorService) windowFor(ctx context.Context, courseID string, until types.Date, events []types.Event) (*types.SlidingWindow, error) {
  key := is.cacheKey("window", courseID, until, "", "")
  var cached types.SlidingWindow
  if is.fromCache(ctx, key, &cached) {
    return &cached, nil
  }
  window, err := indicators.ComputeSlidingWindow(events, until, is.cfg.Thresholds)
  if err != nil {
    return nil, err
  }
  is.toCache(ctx, key, window)
  return window, nil
}

func (is *indicatorService) cacheKey(kind, courseID string, until types.Date, studentID, flags string) string {
  th := is.cfg.Thresholds
  return redis.Key(
    kind,
    courseID,
    until.String(),
    fmt.Sprintf("%d:%d:%d", th.SlidingWindowMin, th.ActiveActionsMin, th.DynamicCohortMin),
    studentID,
    flags,
  )
}

func (is *indicatorService) fromCache(ctx context.Context, key string, dest any) bool {
  if is.cache == nil {
    return false
  }
  hit, err := is.cache.GetJSON(ctx, key, dest)
  if err != nil {
    is.log.Warn("cache read failed, computing", "key", key, "error", err)
    return false
  }
  return hit
}

func (is *indicatorService) toCache(ctx context.Context, key string, value any) {
  if is.cache == nil {
    return
  }
  if err := is.cache.SetJSON(ctx, key, value, is.cfg.CacheTTL); err != nil {
    is.log.Warn("cache write failed", "key", key, "error", err)
  }
}
