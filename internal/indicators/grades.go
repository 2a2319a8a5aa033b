package indicators

import (
  "fmt"

  "github.com/openlearn/pulse-backend/internal/types"
)

// ComposeGrades pivots graded statements into a per-student grade matrix
// restricted to gradable active actions. Columns appear in first-graded
// order; an action nobody was graded on is not reported. A student holding
// two grades for the same action is a data quality fault upstream and fails
// the whole computation instead of silently picking one.
//
// The column average skips missing cells and, like score statistics, is
// suppressed for a single-student request.
func ComposeGrades(window *types.SlidingWindow, events []types.Event, studentID string, average bool) (*types.Grades, error) {
  gradable := make(map[string]types.Action)
  for _, action := range window.ActiveActions {
    if types.IsActivity(action.Category) {
      gradable[action.IRI] = action
    }
  }

  type cellKey struct {
    actor string
    iri   string
  }
  cells := make(map[cellKey]float64)
  students := make(map[string]struct{})
  var columns []string
  columnSet := make(map[string]struct{})

  for _, event := range events {
    if _, ok := gradable[event.ObjectID]; !ok {
      continue
    }
    if studentID != "" && event.ActorID != studentID {
      continue
    }
    if !event.Graded() {
      continue
    }
    key := cellKey{actor: event.ActorID, iri: event.ObjectID}
    if _, dup := cells[key]; dup {
      return nil, fmt.Errorf("student %s on action %s: %w", event.ActorID, event.ObjectID, ErrAmbiguousGrade)
    }
    cells[key] = *event.Score
    students[event.ActorID] = struct{}{}
    if _, ok := columnSet[event.ObjectID]; !ok {
      columnSet[event.ObjectID] = struct{}{}
      columns = append(columns, event.ObjectID)
    }
  }

  actions := make([]types.Action, 0, len(columns))
  for _, iri := range columns {
    actions = append(actions, gradable[iri])
  }

  grades := make(map[string][]*float64, len(students))
  for student := range students {
    row := make([]*float64, len(columns))
    for i, iri := range columns {
      if value, ok := cells[cellKey{actor: student, iri: iri}]; ok {
        grade := value
        row[i] = &grade
      }
    }
    grades[student] = row
  }

  result := &types.Grades{
    Actions: actions,
    Grades:  grades,
  }
  if average && studentID == "" {
    result.Average = gradeAverages(grades, len(columns))
  }
  return result, nil
}

// gradeAverages is the column-wise mean over present cells only; missing
// grades are excluded, not counted as zero.
func gradeAverages(grades map[string][]*float64, width int) []float64 {
  sums := make([]float64, width)
  counts := make([]int, width)
  for _, row := range grades {
    for i, cell := range row {
      if cell == nil {
        continue
      }
      sums[i] += *cell
      counts[i]++
    }
  }
  averages := make([]float64, width)
  for i := range sums {
    if counts[i] > 0 {
      averages[i] = sums[i] / float64(counts[i])
    }
  }
  return averages
}
