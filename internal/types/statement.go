package types

import "encoding/json"

// Statement is one raw xAPI statement as returned by the LRS, limited to the
// fields the normalizer reads.
type Statement struct {
  Timestamp string            `json:"timestamp"`
  Actor     StatementActor    `json:"actor"`
  Verb      StatementVerb     `json:"verb"`
  Object    StatementObject   `json:"object"`
  Context   *StatementContext `json:"context,omitempty"`
  Result    *StatementResult  `json:"result,omitempty"`
}

type StatementActor struct {
  Account StatementAccount `json:"account"`
}

type StatementAccount struct {
  Name     string `json:"name"`
  HomePage string `json:"homePage,omitempty"`
}

type StatementVerb struct {
  ID string `json:"id"`
}

type StatementObject struct {
  ID         string               `json:"id"`
  Definition *StatementDefinition `json:"definition,omitempty"`
}

// StatementDefinition carries the language-tagged display names of an object.
type StatementDefinition struct {
  Name map[string]string `json:"name,omitempty"`
}

type StatementContext struct {
  Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

type StatementResult struct {
  Score *StatementScore `json:"score,omitempty"`
}

type StatementScore struct {
  Scaled *float64 `json:"scaled,omitempty"`
}
