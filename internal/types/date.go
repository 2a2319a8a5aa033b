package types

import (
  "fmt"
  "strings"
  "time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day pinned to UTC midnight. Statements are grouped and
// the sliding window is stepped in whole days, so all date arithmetic goes
// through this type.
type Date struct {
  time.Time
}

// NewDate truncates a timestamp to its UTC calendar day.
func NewDate(t time.Time) Date {
  u := t.UTC()
  return Date{Time: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(value string) (Date, error) {
  t, err := time.Parse(dateLayout, strings.TrimSpace(value))
  if err != nil {
    return Date{}, fmt.Errorf("parse date %q: %w", value, err)
  }
  return NewDate(t), nil
}

// Today returns the current UTC calendar day.
func Today() Date {
  return NewDate(time.Now())
}

func (d Date) AddDays(days int) Date {
  return NewDate(d.Time.AddDate(0, 0, days))
}

// DaysSince returns the whole number of days between other and d.
func (d Date) DaysSince(other Date) int {
  return int(d.Time.Sub(other.Time).Hours() / 24)
}

func (d Date) String() string {
  return d.Time.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
  return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
  parsed, err := ParseDate(strings.Trim(string(data), `"`))
  if err != nil {
    return err
  }
  *d = parsed
  return nil
}
