package indicators

import (
  "math"
  "testing"
)

func almostEqual(a, b float64) bool {
  return math.Abs(a-b) < 1e-9
}

func TestComposeScoresCohort(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()
  cohort := ProjectCohort(window, events, "")

  scores := ComposeScores(window, cohort, "", true, true)
  if len(scores.Scores) != 9 {
    t.Fatalf("expected 9 rows, got %d", len(scores.Scores))
  }
  if len(scores.Actions) != 6 {
    t.Fatalf("expected 6 action columns, got %d", len(scores.Actions))
  }

  // Every cell carries the column's activation rate, signed by whether the
  // student performed the action.
  rateByIRI := make(map[string]float64)
  for _, action := range window.ActiveActions {
    rateByIRI[action.IRI] = action.ActivationRate
  }
  for student, row := range scores.Scores {
    if len(row) != len(scores.Actions) {
      t.Fatalf("row width mismatch for %s: %d vs %d", student, len(row), len(scores.Actions))
    }
    for i, cell := range row {
      rate := rateByIRI[scores.Actions[i].IRI]
      if !almostEqual(math.Abs(cell), rate) {
        t.Fatalf("cell magnitude for %s/%s: got %f, want %f", student, scores.Actions[i].IRI, cell, rate)
      }
    }
  }

  // Each fixture action was performed by exactly 3 of the 9 students, so
  // every column sums to 3*(1/3) - 6*(1/3) = -1 and averages to -1/9.
  if len(scores.Total) != 6 || len(scores.Average) != 6 {
    t.Fatalf("expected totals and averages over 6 columns, got %d and %d", len(scores.Total), len(scores.Average))
  }
  for i := range scores.Total {
    if !almostEqual(scores.Total[i], -1.0) {
      t.Fatalf("column %d total: got %f, want -1", i, scores.Total[i])
    }
    if !almostEqual(scores.Average[i], -1.0/9.0) {
      t.Fatalf("column %d average: got %f, want %f", i, scores.Average[i], -1.0/9.0)
    }
  }
}

func TestComposeScoresSingleStudent(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()
  cohort := ProjectCohort(window, events, "student_8")

  scores := ComposeScores(window, cohort, "student_8", true, true)
  row, ok := scores.Scores["student_8"]
  if !ok || len(scores.Scores) != 1 {
    t.Fatalf("expected a single row for student_8, got %v", scores.Scores)
  }
  // student_8 only touched act05, so the matrix has one column and the
  // action list leads with it.
  if len(row) != 1 {
    t.Fatalf("expected 1 column, got %d", len(row))
  }
  if scores.Actions[0].IRI != actionIRI("05") {
    t.Fatalf("expected leading action %s, got %s", actionIRI("05"), scores.Actions[0].IRI)
  }
  if len(scores.Actions) != 6 {
    t.Fatalf("expected all 6 active actions listed, got %d", len(scores.Actions))
  }
  if row[0] <= 0 {
    t.Fatalf("performed action must score positive, got %f", row[0])
  }
  // Cohort statistics stay suppressed for a single student even when asked.
  if scores.Total != nil || scores.Average != nil {
    t.Fatalf("totals and averages must be suppressed for a single student")
  }
}

func TestComposeScoresAbsentStudent(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()
  cohort := ProjectCohort(window, events, "student_42")

  scores := ComposeScores(window, cohort, "student_42", true, true)
  row, ok := scores.Scores["student_42"]
  if !ok || len(scores.Scores) != 1 {
    t.Fatalf("expected a single row for the absent student, got %v", scores.Scores)
  }
  if len(row) != len(window.ActiveActions) {
    t.Fatalf("expected %d columns, got %d", len(window.ActiveActions), len(row))
  }
  for i, cell := range row {
    if cell >= 0 {
      t.Fatalf("column %d: absent student must score negative, got %f", i, cell)
    }
  }
  if scores.Total != nil || scores.Average != nil {
    t.Fatalf("totals and averages must be suppressed for a single student")
  }
}

func TestComposeScoresFlagsOff(t *testing.T) {
  window := fixtureWindow(t)
  cohort := ProjectCohort(window, fixtureEvents(), "")

  scores := ComposeScores(window, cohort, "", false, false)
  if scores.Total != nil {
    t.Fatalf("totals not requested, got %v", scores.Total)
  }
  if scores.Average != nil {
    t.Fatalf("averages not requested, got %v", scores.Average)
  }
}
