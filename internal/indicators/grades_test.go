package indicators

import (
  "errors"
  "testing"

  "github.com/openlearn/pulse-backend/internal/types"
)

func TestComposeGradesCohort(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()

  grades, err := ComposeGrades(window, events, "", true)
  if err != nil {
    t.Fatalf("compose grades: %v", err)
  }

  // act03 is gradable but nobody was graded on it, so only the quiz and the
  // assignment survive, in first-graded order.
  if len(grades.Actions) != 2 {
    t.Fatalf("expected 2 graded actions, got %d", len(grades.Actions))
  }
  if grades.Actions[0].IRI != actionIRI("01") || grades.Actions[1].IRI != actionIRI("02") {
    t.Fatalf("unexpected column order: %s, %s", grades.Actions[0].IRI, grades.Actions[1].IRI)
  }
  if len(grades.Grades) != 4 {
    t.Fatalf("expected 4 graded students, got %d", len(grades.Grades))
  }

  s2 := grades.Grades["student_2"]
  if s2[0] == nil || *s2[0] != 15 || s2[1] == nil || *s2[1] != 14 {
    t.Fatalf("unexpected row for student_2: %v", s2)
  }
  s4 := grades.Grades["student_4"]
  if s4[0] != nil {
    t.Fatalf("student_4 was never graded on the quiz, got %f", *s4[0])
  }
  if s4[1] == nil || *s4[1] != 16 {
    t.Fatalf("unexpected assignment grade for student_4: %v", s4[1])
  }

  if len(grades.Average) != 2 {
    t.Fatalf("expected 2 column averages, got %d", len(grades.Average))
  }
  if grades.Average[0] != 12 {
    t.Fatalf("quiz average: got %f, want 12", grades.Average[0])
  }
  if want := 41.0 / 3.0; !almostEqual(grades.Average[1], want) {
    t.Fatalf("assignment average: got %f, want %f", grades.Average[1], want)
  }
}

func TestComposeGradesAverageSkipsMissing(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()

  grades, err := ComposeGrades(window, events, "", true)
  if err != nil {
    t.Fatalf("compose grades: %v", err)
  }
  // student_1 has no assignment grade and student_4 no quiz grade; the
  // averages above only hold if missing cells are excluded rather than
  // counted as zero.
  if grades.Average[0] == (12.0*3)/4 {
    t.Fatalf("quiz average treated a missing cell as zero")
  }
}

func TestComposeGradesSingleStudent(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()

  grades, err := ComposeGrades(window, events, "student_4", true)
  if err != nil {
    t.Fatalf("compose grades: %v", err)
  }
  if len(grades.Grades) != 1 {
    t.Fatalf("expected a single row, got %d", len(grades.Grades))
  }
  if len(grades.Actions) != 1 || grades.Actions[0].IRI != actionIRI("02") {
    t.Fatalf("expected only the assignment column, got %v", grades.Actions)
  }
  row := grades.Grades["student_4"]
  if len(row) != 1 || row[0] == nil || *row[0] != 16 {
    t.Fatalf("unexpected row for student_4: %v", row)
  }
  if grades.Average != nil {
    t.Fatalf("average must be suppressed for a single student")
  }
}

func TestComposeGradesAmbiguous(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()
  // A second graded attempt by the same student on the same quiz.
  events = append(events, makeEvent("student_1", "01", quizEvent, 1, grade(18)))

  if _, err := ComposeGrades(window, events, "", false); !errors.Is(err, ErrAmbiguousGrade) {
    t.Fatalf("expected ErrAmbiguousGrade, got %v", err)
  }
}

func TestComposeGradesNoGradableActions(t *testing.T) {
  window := &types.SlidingWindow{
    Window: types.Window{Since: fixtureUntil().AddDays(-15), Until: fixtureUntil()},
    ActiveActions: []types.Action{
      {IRI: actionIRI("04"), Name: "Action 04", Category: pageEvent},
    },
  }
  grades, err := ComposeGrades(window, fixtureEvents(), "", true)
  if err != nil {
    t.Fatalf("compose grades: %v", err)
  }
  if len(grades.Actions) != 0 || len(grades.Grades) != 0 {
    t.Fatalf("expected empty matrix without gradable actions, got %v", grades)
  }
}
