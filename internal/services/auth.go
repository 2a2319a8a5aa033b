package services

import (
  "context"
  "fmt"

  "github.com/golang-jwt/jwt/v5"

  "github.com/openlearn/pulse-backend/internal/pkg/logger"
  "github.com/openlearn/pulse-backend/internal/requestdata"
)

// AuthService verifies LTI session tokens minted at launch time and exposes
// their identity through the request context.
type AuthService interface {
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type sessionClaims struct {
  jwt.RegisteredClaims
  CourseID string   `json:"course_id"`
  Roles    []string `json:"roles"`
}

type authService struct {
  log    *logger.Logger
  secret []byte
}

func NewAuthService(baseLog *logger.Logger, jwtSecretKey string) AuthService {
  return &authService{
    log:    baseLog.With("service", "AuthService"),
    secret: []byte(jwtSecretKey),
  }
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := &sessionClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return as.secret, nil
  })
  if err != nil {
    return ctx, fmt.Errorf("parse session token: %w", err)
  }
  if !token.Valid {
    return ctx, fmt.Errorf("invalid session token")
  }
  if claims.Subject == "" || claims.CourseID == "" {
    return ctx, fmt.Errorf("session token missing user or course")
  }

  rd := &requestdata.RequestData{
    UserID:   claims.Subject,
    CourseID: claims.CourseID,
    Roles:    claims.Roles,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}
