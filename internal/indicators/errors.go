package indicators

import "errors"

// Precondition and consistency failures surfaced by indicator computations.
// Each condition calls for a different remediation upstream, so they are kept
// distinct instead of collapsed into one generic failure.
var (
  // ErrDataInsufficient: no statements at all for the course actions.
  ErrDataInsufficient = errors.New("no statements found for course")
  // ErrInsufficientTimeSpread: statements span fewer days than the minimum window.
  ErrInsufficientTimeSpread = errors.New("statements span fewer days than the sliding window minimum")
  // ErrInsufficientActionDiversity: fewer distinct actions than the active actions minimum.
  ErrInsufficientActionDiversity = errors.New("statements cover fewer actions than the active actions minimum")
  // ErrInsufficientCohortSize: fewer distinct students than the dynamic cohort minimum.
  ErrInsufficientCohortSize = errors.New("statements come from fewer students than the dynamic cohort minimum")
  // ErrAmbiguousGrade: a student holds more than one grade for the same action.
  ErrAmbiguousGrade = errors.New("student has multiple grades for the same action")
)
