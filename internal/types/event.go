package types

import "time"

// Event is one normalized learner activity record. ObjectID plus Category
// identify an action; Date is Timestamp truncated to its UTC calendar day.
type Event struct {
  ActorID    string
  ObjectID   string
  ObjectName string
  Category   string
  Timestamp  time.Time
  Date       Date
  Score      *float64
}

// Graded reports whether the source statement carried a numeric result.
func (e Event) Graded() bool {
  return e.Score != nil
}
