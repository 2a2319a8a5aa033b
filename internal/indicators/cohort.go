package indicators

import "github.com/openlearn/pulse-backend/internal/types"

// ProjectCohort maps each student to the distinct active actions they
// performed, in first-seen order. The projection runs over the full statement
// set restricted to active actions, not only the discovered window, so a
// student acting outside the window boundary still shows up. A non-empty
// studentID keeps only that student's entry; an absent student yields an
// empty projection, not an error.
func ProjectCohort(window *types.SlidingWindow, events []types.Event, studentID string) types.Cohort {
  activeSet := make(map[string]struct{}, len(window.ActiveActions))
  for _, action := range window.ActiveActions {
    activeSet[action.IRI] = struct{}{}
  }

  cohort := make(types.Cohort)
  seen := make(map[string]map[string]struct{})
  for _, event := range events {
    if _, ok := activeSet[event.ObjectID]; !ok {
      continue
    }
    if seen[event.ActorID] == nil {
      seen[event.ActorID] = make(map[string]struct{})
    }
    if _, dup := seen[event.ActorID][event.ObjectID]; dup {
      continue
    }
    seen[event.ActorID][event.ObjectID] = struct{}{}
    cohort[event.ActorID] = append(cohort[event.ActorID], event.ObjectID)
  }

  if studentID == "" {
    return cohort
  }
  scoped := make(types.Cohort, 1)
  if actions, ok := cohort[studentID]; ok {
    scoped[studentID] = actions
  }
  return scoped
}
