package indicators

import (
  "testing"

  "github.com/openlearn/pulse-backend/internal/types"
)

func TestProjectCohort(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()

  cohort := ProjectCohort(window, events, "")
  if len(cohort) < 3 {
    t.Fatalf("expected at least 3 students in the projection, got %d", len(cohort))
  }

  activeSet := make(map[string]struct{})
  for _, action := range window.ActiveActions {
    activeSet[action.IRI] = struct{}{}
  }

  seen := make(map[string]struct{})
  for student, actions := range cohort {
    if len(actions) == 0 {
      t.Fatalf("student %s has an empty action list", student)
    }
    dedup := make(map[string]struct{})
    for _, iri := range actions {
      if _, ok := activeSet[iri]; !ok {
        t.Fatalf("student %s projected on inactive action %s", student, iri)
      }
      if _, dup := dedup[iri]; dup {
        t.Fatalf("student %s lists action %s twice", student, iri)
      }
      dedup[iri] = struct{}{}
      seen[iri] = struct{}{}
    }
  }
  // Every active action shows up somewhere in the cohort activity.
  if len(seen) != len(window.ActiveActions) {
    t.Fatalf("expected all %d active actions in the projection, got %d", len(window.ActiveActions), len(seen))
  }
}

func TestProjectCohortFirstSeenOrder(t *testing.T) {
  window := fixtureWindow(t)
  events := fixtureEvents()

  cohort := ProjectCohort(window, events, "student_2")
  actions, ok := cohort["student_2"]
  if !ok {
    t.Fatalf("student_2 missing from scoped projection")
  }
  // student_2 touches act01 (day -2) before act02 (day -2, later in the
  // statement stream); act07 is not active and must not appear.
  want := []string{actionIRI("01"), actionIRI("02")}
  if len(actions) != len(want) {
    t.Fatalf("expected %d actions for student_2, got %v", len(want), actions)
  }
  for i := range want {
    if actions[i] != want[i] {
      t.Fatalf("expected action %d to be %s, got %s", i, want[i], actions[i])
    }
  }
}

func TestProjectCohortAbsentStudent(t *testing.T) {
  window := fixtureWindow(t)

  cohort := ProjectCohort(window, fixtureEvents(), "student_42")
  if len(cohort) != 0 {
    t.Fatalf("expected an empty projection for an unknown student, got %v", cohort)
  }
}

func TestProjectCohortDegenerateWindow(t *testing.T) {
  window := &types.SlidingWindow{
    Window:        types.Window{Since: fixtureUntil(), Until: fixtureUntil()},
    ActiveActions: []types.Action{},
  }
  cohort := ProjectCohort(window, fixtureEvents(), "")
  if len(cohort) != 0 {
    t.Fatalf("expected an empty projection without active actions, got %v", cohort)
  }
}
