package indicators

import (
  "testing"
  "time"

  "github.com/openlearn/pulse-backend/internal/types"
)

// Shared event fixture: 9 students, 13 candidate actions ending at a fixed
// cutoff. Six actions gather 3 distinct students within 15-16 days, one more
// only reaches 2 students, and the remaining six are single-student noise on
// the cutoff day. With the default thresholds the search stops with
// since = until - 16 days and actions act01..act06 active.

const (
  quizEvent   = `\mod_quiz\event\attempt_submitted`
  assignEvent = `\mod_assign\event\assessable_submitted`
  forumEvent  = `\mod_forum\event\post_created`
  pageEvent   = `\mod_page\event\course_module_viewed`
  urlEvent    = `\mod_url\event\course_module_viewed`
  bookEvent   = `\mod_book\event\chapter_viewed`
  wikiEvent   = `\mod_wiki\event\course_module_viewed`
)

func fixtureUntil() types.Date {
  return types.NewDate(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
}

func actionIRI(id string) string {
  return "https://lms.example.com/action/" + id
}

func grade(v float64) *float64 {
  return &v
}

func makeEvent(actor, actionID, category string, daysBack int, score *float64) types.Event {
  date := fixtureUntil().AddDays(-daysBack)
  return types.Event{
    ActorID:    actor,
    ObjectID:   actionIRI(actionID),
    ObjectName: "Action " + actionID,
    Category:   category,
    Timestamp:  date.Time.Add(10 * time.Hour),
    Date:       date,
    Score:      score,
  }
}

func fixtureEvents() []types.Event {
  events := []types.Event{
    // act01: graded quiz, 3 students inside the minimum window
    makeEvent("student_1", "01", quizEvent, 1, grade(12)),
    makeEvent("student_2", "01", quizEvent, 2, grade(15)),
    makeEvent("student_3", "01", quizEvent, 3, grade(9)),
    // act02: graded assignment, 3 students inside the minimum window
    makeEvent("student_2", "02", assignEvent, 2, grade(14)),
    makeEvent("student_3", "02", assignEvent, 4, grade(11)),
    makeEvent("student_4", "02", assignEvent, 6, grade(16)),
    // act03: forum posts, gradable category but nobody was graded
    makeEvent("student_4", "03", forumEvent, 5, nil),
    makeEvent("student_5", "03", forumEvent, 7, nil),
    makeEvent("student_6", "03", forumEvent, 9, nil),
    // act04, act05: ressource consultations
    makeEvent("student_5", "04", pageEvent, 8, nil),
    makeEvent("student_6", "04", pageEvent, 10, nil),
    makeEvent("student_7", "04", pageEvent, 12, nil),
    makeEvent("student_7", "05", urlEvent, 11, nil),
    makeEvent("student_8", "05", urlEvent, 13, nil),
    makeEvent("student_9", "05", urlEvent, 15, nil),
    // act06: qualifies only once the window reaches 16 days back
    makeEvent("student_1", "06", bookEvent, 16, nil),
    makeEvent("student_5", "06", bookEvent, 16, nil),
    makeEvent("student_9", "06", bookEvent, 16, nil),
    // act07: only 2 students, never active
    makeEvent("student_2", "07", wikiEvent, 17, nil),
    makeEvent("student_6", "07", wikiEvent, 17, nil),
  }
  // act08..act13: single-student noise on the cutoff day
  noiseActions := []string{"08", "09", "10", "11", "12", "13"}
  for i, id := range noiseActions {
    actor := "student_" + string(rune('1'+i))
    events = append(events, makeEvent(actor, id, pageEvent, 0, nil))
  }
  return events
}

func fixtureWindow(t *testing.T) *types.SlidingWindow {
  t.Helper()
  window, err := ComputeSlidingWindow(fixtureEvents(), fixtureUntil(), DefaultThresholds())
  if err != nil {
    t.Fatalf("compute sliding window: %v", err)
  }
  return window
}
