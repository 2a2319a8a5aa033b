package indicators

import (
  "maps"
  "slices"

  "github.com/openlearn/pulse-backend/internal/types"
)

// ComposeScores builds the signed participation matrix for active actions:
// +activation_rate when the student performed the action, -activation_rate
// when they did not. Columns are the sorted union of action IRIs referenced
// by the in-scope cohort; the returned action list is reordered so its
// leading entries line up with the columns, with unreferenced active actions
// kept after them in discovery order.
//
// Totals and averages are cohort statistics: they are computed only for the
// unscoped view and always suppressed when a single student is requested,
// whatever the flags say.
func ComposeScores(window *types.SlidingWindow, cohort types.Cohort, studentID string, totals, average bool) *types.Scores {
  rateByIRI := make(map[string]float64, len(window.ActiveActions))
  actionByIRI := make(map[string]types.Action, len(window.ActiveActions))
  for _, action := range window.ActiveActions {
    rateByIRI[action.IRI] = action.ActivationRate
    actionByIRI[action.IRI] = action
  }

  if studentID != "" {
    scopedActions, ok := cohort[studentID]
    if !ok {
      // A student with no activity on any active action owes the full
      // weight of each of them.
      row := make([]float64, len(window.ActiveActions))
      for i, action := range window.ActiveActions {
        row[i] = -action.ActivationRate
      }
      return &types.Scores{
        Actions: window.ActiveActions,
        Scores:  map[string][]float64{studentID: row},
      }
    }
    cohort = types.Cohort{studentID: scopedActions}
  }

  columnSet := make(map[string]struct{})
  for _, actions := range cohort {
    for _, iri := range actions {
      columnSet[iri] = struct{}{}
    }
  }
  columns := slices.Sorted(maps.Keys(columnSet))

  scores := make(map[string][]float64, len(cohort))
  for student, actions := range cohort {
    performed := make(map[string]struct{}, len(actions))
    for _, iri := range actions {
      performed[iri] = struct{}{}
    }
    row := make([]float64, len(columns))
    for i, iri := range columns {
      rate := rateByIRI[iri]
      if _, ok := performed[iri]; ok {
        row[i] = rate
      } else {
        row[i] = -rate
      }
    }
    scores[student] = row
  }

  result := &types.Scores{
    Actions: orderActionsByColumns(window.ActiveActions, columns),
    Scores:  scores,
  }

  if studentID != "" {
    return result
  }
  if average {
    result.Average = columnMeans(scores, len(columns))
  }
  if totals {
    result.Total = columnSums(scores, len(columns))
  }
  return result
}

// orderActionsByColumns puts the actions backing matrix columns first, in
// column order, and appends the remaining active actions in discovery order.
func orderActionsByColumns(actions []types.Action, columns []string) []types.Action {
  byIRI := make(map[string]types.Action, len(actions))
  for _, action := range actions {
    byIRI[action.IRI] = action
  }
  inColumns := make(map[string]struct{}, len(columns))

  ordered := make([]types.Action, 0, len(actions))
  for _, iri := range columns {
    if action, ok := byIRI[iri]; ok {
      ordered = append(ordered, action)
      inColumns[iri] = struct{}{}
    }
  }
  for _, action := range actions {
    if _, ok := inColumns[action.IRI]; !ok {
      ordered = append(ordered, action)
    }
  }
  return ordered
}

func columnSums(scores map[string][]float64, width int) []float64 {
  sums := make([]float64, width)
  for _, row := range scores {
    for i, value := range row {
      sums[i] += value
    }
  }
  return sums
}

func columnMeans(scores map[string][]float64, width int) []float64 {
  means := columnSums(scores, width)
  if len(scores) == 0 {
    return means
  }
  for i := range means {
    means[i] /= float64(len(scores))
  }
  return means
}
