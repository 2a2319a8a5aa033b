package indicators

import (
  "encoding/json"
  "fmt"
  "maps"
  "slices"
  "time"

  "github.com/openlearn/pulse-backend/internal/types"
)

// InfoExtensionIRI is the context extension carrying the source event name,
// used as the action category.
const InfoExtensionIRI = "http://lrs.learninglocker.net/define/extensions/info"

type infoExtension struct {
  EventName string `json:"event_name"`
}

// NormalizeStatements turns raw LRS statements into the uniform Event set the
// indicators operate on. The display name is resolved against preferredLang
// first, then the lexicographically smallest language tag, so the pick is
// deterministic whatever the LRS returned.
func NormalizeStatements(statements []types.Statement, preferredLang string) ([]types.Event, error) {
  if len(statements) == 0 {
    return nil, fmt.Errorf("normalize statements: %w", ErrDataInsufficient)
  }

  events := make([]types.Event, 0, len(statements))
  for i, statement := range statements {
    timestamp, err := time.Parse(time.RFC3339Nano, statement.Timestamp)
    if err != nil {
      return nil, fmt.Errorf("normalize statement %d: bad timestamp %q: %w", i, statement.Timestamp, err)
    }
    timestamp = timestamp.UTC()

    event := types.Event{
      ActorID:    statement.Actor.Account.Name,
      ObjectID:   statement.Object.ID,
      ObjectName: localizedName(statement.Object.Definition, preferredLang),
      Category:   eventCategory(statement.Context),
      Timestamp:  timestamp,
      Date:       types.NewDate(timestamp),
    }
    if statement.Result != nil && statement.Result.Score != nil && statement.Result.Score.Scaled != nil {
      score := *statement.Result.Score.Scaled
      event.Score = &score
    }
    events = append(events, event)
  }
  return events, nil
}

func localizedName(definition *types.StatementDefinition, preferredLang string) string {
  if definition == nil || len(definition.Name) == 0 {
    return ""
  }
  if name, ok := definition.Name[preferredLang]; ok {
    return name
  }
  langs := slices.Sorted(maps.Keys(definition.Name))
  return definition.Name[langs[0]]
}

func eventCategory(context *types.StatementContext) string {
  if context == nil {
    return ""
  }
  raw, ok := context.Extensions[InfoExtensionIRI]
  if !ok {
    return ""
  }
  var info infoExtension
  if err := json.Unmarshal(raw, &info); err != nil {
    return ""
  }
  return info.EventName
}
