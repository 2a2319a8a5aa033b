package indicators

import (
  "fmt"
  "maps"
  "slices"
  "sort"

  "github.com/openlearn/pulse-backend/internal/types"
)

// Thresholds drive the sliding window discovery.
type Thresholds struct {
  SlidingWindowMin int `json:"sliding_window_min"`
  ActiveActionsMin int `json:"active_actions_min"`
  DynamicCohortMin int `json:"dynamic_cohort_min"`
}

func DefaultThresholds() Thresholds {
  return Thresholds{
    SlidingWindowMin: 15,
    ActiveActionsMin: 6,
    DynamicCohortMin: 3,
  }
}

// candidateAction is one (iri, name, category) group observed inside the
// current window, with the distinct students who performed it there.
type candidateAction struct {
  iri      string
  name     string
  category string
  actors   map[string]struct{}
}

// ComputeSlidingWindow finds the narrowest trailing window ending at until
// that records at least th.ActiveActionsMin active actions. The search steps
// since back one day at a time; an action becomes active when its in-window
// participants reach both the cohort minimum and 10% of the current window
// cohort, and once active is never re-evaluated. When the search exhausts the
// statement range the degenerate result [until, until] with no actions is
// returned, not an error.
func ComputeSlidingWindow(events []types.Event, until types.Date, th Thresholds) (*types.SlidingWindow, error) {
  if err := checkPreconditions(events, until, th); err != nil {
    return nil, err
  }

  minDate := earliestDate(events)
  since := until.AddDays(-th.SlidingWindowMin)

  recorded := make(map[string]struct{})
  var active []candidateAction

  for !since.Before(minDate.Time) {
    windowed := eventsSince(events, since)
    if len(windowed) == 0 {
      // Empty day: skip it, do not give up.
      since = since.AddDays(-1)
      continue
    }

    cohort := distinctActors(windowed)
    cohortSize := len(cohort)

    for _, candidate := range groupCandidates(windowed) {
      if _, ok := recorded[candidate.iri]; ok {
        continue
      }
      participants := len(candidate.actors)
      if participants >= th.DynamicCohortMin && float64(participants) >= 0.1*float64(cohortSize) {
        recorded[candidate.iri] = struct{}{}
        active = append(active, candidate)
      }
    }

    if len(active) < th.ActiveActionsMin {
      since = since.AddDays(-1)
      continue
    }

    return &types.SlidingWindow{
      Window:        types.Window{Since: since, Until: until},
      ActiveActions: computeActivation(events, active, cohortSize),
      DynamicCohort: slices.Sorted(maps.Keys(cohort)),
    }, nil
  }

  // Exhausted the whole statement range: degenerate empty result.
  return &types.SlidingWindow{
    Window:        types.Window{Since: until, Until: until},
    ActiveActions: []types.Action{},
    DynamicCohort: []string{},
  }, nil
}

// checkPreconditions fails fast against the entire statement set, before any
// window is considered.
func checkPreconditions(events []types.Event, until types.Date, th Thresholds) error {
  if len(events) == 0 {
    return fmt.Errorf("sliding window: %w", ErrDataInsufficient)
  }
  if until.DaysSince(earliestDate(events)) < th.SlidingWindowMin {
    return fmt.Errorf("sliding window needs %d days of statements: %w",
      th.SlidingWindowMin, ErrInsufficientTimeSpread)
  }
  if len(distinctObjects(events)) < th.ActiveActionsMin {
    return fmt.Errorf("sliding window needs %d distinct actions: %w",
      th.ActiveActionsMin, ErrInsufficientActionDiversity)
  }
  if len(distinctActors(events)) < th.DynamicCohortMin {
    return fmt.Errorf("sliding window needs %d distinct students: %w",
      th.DynamicCohortMin, ErrInsufficientCohortSize)
  }
  return nil
}

// computeActivation enriches the discovered actions with lifetime activation
// data, scanning the full unwindowed statement set. The rate is measured
// against the final window cohort and can therefore exceed it, so it is
// capped at 1.0.
func computeActivation(events []types.Event, active []candidateAction, cohortSize int) []types.Action {
  actions := make([]types.Action, 0, len(active))
  for _, candidate := range active {
    var activationDate types.Date
    students := make(map[string]struct{})
    first := true
    for _, event := range events {
      if event.ObjectID != candidate.iri {
        continue
      }
      if first || event.Date.Before(activationDate.Time) {
        activationDate = event.Date
        first = false
      }
      students[event.ActorID] = struct{}{}
    }

    rate := float64(len(students)) / float64(cohortSize)
    if rate > 1.0 {
      rate = 1.0
    }

    actions = append(actions, types.Action{
      IRI:                candidate.iri,
      Name:               candidate.name,
      Category:           candidate.category,
      ActivationDate:     activationDate,
      ActivationRate:     rate,
      ActivationStudents: slices.Sorted(maps.Keys(students)),
    })
  }
  return actions
}

// groupCandidates groups windowed events by (iri, name, category) and counts
// distinct students per group. Groups come back sorted by key so the order in
// which same-step qualifiers are recorded is stable across runs.
func groupCandidates(events []types.Event) []candidateAction {
  type key struct {
    iri      string
    name     string
    category string
  }
  groups := make(map[key]map[string]struct{})
  for _, event := range events {
    k := key{iri: event.ObjectID, name: event.ObjectName, category: event.Category}
    if groups[k] == nil {
      groups[k] = make(map[string]struct{})
    }
    groups[k][event.ActorID] = struct{}{}
  }

  candidates := make([]candidateAction, 0, len(groups))
  for k, actors := range groups {
    candidates = append(candidates, candidateAction{
      iri:      k.iri,
      name:     k.name,
      category: k.category,
      actors:   actors,
    })
  }
  sort.Slice(candidates, func(i, j int) bool {
    if candidates[i].iri != candidates[j].iri {
      return candidates[i].iri < candidates[j].iri
    }
    if candidates[i].name != candidates[j].name {
      return candidates[i].name < candidates[j].name
    }
    return candidates[i].category < candidates[j].category
  })
  return candidates
}

func eventsSince(events []types.Event, since types.Date) []types.Event {
  windowed := make([]types.Event, 0, len(events))
  for _, event := range events {
    if !event.Date.Before(since.Time) {
      windowed = append(windowed, event)
    }
  }
  return windowed
}

func distinctActors(events []types.Event) map[string]struct{} {
  actors := make(map[string]struct{})
  for _, event := range events {
    actors[event.ActorID] = struct{}{}
  }
  return actors
}

func distinctObjects(events []types.Event) map[string]struct{} {
  objects := make(map[string]struct{})
  for _, event := range events {
    objects[event.ObjectID] = struct{}{}
  }
  return objects
}

func earliestDate(events []types.Event) types.Date {
  earliest := events[0].Date
  for _, event := range events[1:] {
    if event.Date.Before(earliest.Time) {
      earliest = event.Date
    }
  }
  return earliest
}
