package types

// Window is the closed date interval discovered by the sliding window search.
// Until is fixed by the caller; Since is the searched boundary.
type Window struct {
  Since Date `json:"since"`
  Until Date `json:"until"`
}

// Action is an active action discovered within the sliding window, enriched
// with lifetime activation information.
type Action struct {
  IRI                string   `json:"iri"`
  Name               string   `json:"name"`
  Category           string   `json:"module_type"`
  ActivationDate     Date     `json:"activation_date"`
  ActivationRate     float64  `json:"activation_rate"`
  ActivationStudents []string `json:"activation_students"`
}

// SlidingWindow is the computed window indicator. ActiveActions keeps the
// order in which actions were first recorded during the search.
type SlidingWindow struct {
  Window        Window   `json:"window"`
  ActiveActions []Action `json:"active_actions"`
  DynamicCohort []string `json:"dynamic_cohort"`
}

// Degenerate reports whether the search exhausted its range without reaching
// the active actions minimum.
func (sw SlidingWindow) Degenerate() bool {
  return len(sw.ActiveActions) == 0
}

// Cohort maps a student to the distinct active actions they performed, in
// first-seen order.
type Cohort map[string][]string

// Scores is the signed participation matrix. Each student row is aligned
// positionally with the leading entries of Actions.
type Scores struct {
  Actions []Action             `json:"actions"`
  Scores  map[string][]float64 `json:"scores"`
  Total   []float64            `json:"total,omitempty"`
  Average []float64            `json:"average,omitempty"`
}

// Grades is the numeric grade matrix over gradable active actions. Missing
// cells are nil and serialize as null.
type Grades struct {
  Actions []Action              `json:"actions"`
  Grades  map[string][]*float64 `json:"grades"`
  Average []float64             `json:"average,omitempty"`
}
