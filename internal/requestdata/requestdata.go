package requestdata

import (
  "context"
  "strings"
)

type contextKey struct{}

var requestDataKey = contextKey{}

// RequestData is the per-request LTI session identity: who is asking, for
// which course, with which roles.
type RequestData struct {
  UserID   string
  CourseID string
  Roles    []string
}

// IsInstructor reports whether any role grants cohort-wide visibility.
// Everyone else is force-scoped to their own statements.
func (rd *RequestData) IsInstructor() bool {
  if rd == nil {
    return false
  }
  for _, role := range rd.Roles {
    name := strings.ToLower(strings.TrimSpace(role))
    // LTI roles may arrive as full vocabulary URIs.
    if i := strings.LastIndexByte(name, '#'); i >= 0 {
      name = name[i+1:]
    }
    switch name {
    case "instructor", "teacher", "administrator", "staff":
      return true
    }
  }
  return false
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
    return rd
  }
  return nil
}
