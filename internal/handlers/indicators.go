package handlers

import (
  "errors"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/openlearn/pulse-backend/internal/clients/lrs"
  "github.com/openlearn/pulse-backend/internal/indicators"
  "github.com/openlearn/pulse-backend/internal/pkg/logger"
  "github.com/openlearn/pulse-backend/internal/repos"
  "github.com/openlearn/pulse-backend/internal/requestdata"
  "github.com/openlearn/pulse-backend/internal/services"
  "github.com/openlearn/pulse-backend/internal/types"
)

type IndicatorHandler struct {
  log              *logger.Logger
  indicatorService services.IndicatorService
}

func NewIndicatorHandler(baseLog *logger.Logger, indicatorService services.IndicatorService) *IndicatorHandler {
  return &IndicatorHandler{
    log:              baseLog.With("handler", "IndicatorHandler"),
    indicatorService: indicatorService,
  }
}

// GetWindow returns the course sliding window indicator.
func (h *IndicatorHandler) GetWindow(c *gin.Context) {
  rd, until, ok := h.requestScope(c)
  if !ok {
    return
  }
  window, err := h.indicatorService.ComputeWindow(c.Request.Context(), rd.CourseID, until)
  if err != nil {
    h.respondIndicatorError(c, "window", err)
    return
  }
  RespondOK(c, window)
}

// GetCohort returns the per-student active action lists. Students only see
// their own entry.
func (h *IndicatorHandler) GetCohort(c *gin.Context) {
  rd, until, ok := h.requestScope(c)
  if !ok {
    return
  }
  cohort, err := h.indicatorService.ComputeCohort(c.Request.Context(), rd.CourseID, until, studentScope(rd))
  if err != nil {
    h.respondIndicatorError(c, "cohort", err)
    return
  }
  RespondOK(c, cohort)
}

// GetScores returns the signed participation scores. Totals and averages are
// cohort-wide statistics and only honored for instructors.
func (h *IndicatorHandler) GetScores(c *gin.Context) {
  rd, until, ok := h.requestScope(c)
  if !ok {
    return
  }
  totals := parseBoolQuery(c, "totals")
  average := parseBoolQuery(c, "average")
  scores, err := h.indicatorService.ComputeScores(c.Request.Context(), rd.CourseID, until, studentScope(rd), totals, average)
  if err != nil {
    h.respondIndicatorError(c, "scores", err)
    return
  }
  RespondOK(c, scores)
}

// GetGrades returns the grade matrix over gradable active actions.
func (h *IndicatorHandler) GetGrades(c *gin.Context) {
  rd, until, ok := h.requestScope(c)
  if !ok {
    return
  }
  average := parseBoolQuery(c, "average")
  grades, err := h.indicatorService.ComputeGrades(c.Request.Context(), rd.CourseID, until, studentScope(rd), average)
  if err != nil {
    h.respondIndicatorError(c, "grades", err)
    return
  }
  RespondOK(c, grades)
}

// requestScope pulls the session identity and the until cutoff (default:
// today) shared by all four routes.
func (h *IndicatorHandler) requestScope(c *gin.Context) (*requestdata.RequestData, types.Date, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return nil, types.Date{}, false
  }

  until := types.Today()
  if raw := c.Query("until"); raw != "" {
    parsed, err := types.ParseDate(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_until", err)
      return nil, types.Date{}, false
    }
    until = parsed
  }
  return rd, until, true
}

// studentScope limits non-instructors to their own statements.
func studentScope(rd *requestdata.RequestData) string {
  if rd.IsInstructor() {
    return ""
  }
  return rd.UserID
}

func parseBoolQuery(c *gin.Context, name string) bool {
  value, err := strconv.ParseBool(c.DefaultQuery(name, "false"))
  if err != nil {
    return false
  }
  return value
}

func (h *IndicatorHandler) respondIndicatorError(c *gin.Context, kind string, err error) {
  h.log.Error("indicator computation failed", "indicator", kind, "error", err)
  switch {
  case errors.Is(err, repos.ErrUnknownCourse),
    errors.Is(err, repos.ErrCourseWithoutContent):
    RespondError(c, http.StatusNotFound, "course_not_indexed", err)
  case errors.Is(err, indicators.ErrDataInsufficient),
    errors.Is(err, indicators.ErrInsufficientTimeSpread),
    errors.Is(err, indicators.ErrInsufficientActionDiversity),
    errors.Is(err, indicators.ErrInsufficientCohortSize):
    RespondError(c, http.StatusUnprocessableEntity, "indicator_preconditions_failed", err)
  case errors.Is(err, indicators.ErrAmbiguousGrade):
    RespondError(c, http.StatusConflict, "ambiguous_grade", err)
  case errors.Is(err, lrs.ErrEventSourceUnavailable):
    RespondError(c, http.StatusBadGateway, "event_source_unavailable", err)
  default:
    RespondError(c, http.StatusInternalServerError, "indicator_failed", err)
  }
}
