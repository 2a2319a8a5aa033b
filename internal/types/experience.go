package types

import (
  "time"

  "github.com/google/uuid"
)

// Experience is one indexed learning experience: either a course or a piece
// of course content addressable by its IRI.
type Experience struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  IRI       string    `gorm:"uniqueIndex;not null;column:iri" json:"iri"`
  Title     string    `gorm:"column:title" json:"title"`
  Language  string    `gorm:"column:language" json:"language"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Experience) TableName() string {
  return "experience"
}

// ExperienceRelation links a course experience to one of its content
// experiences.
type ExperienceRelation struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CourseID  uuid.UUID `gorm:"type:uuid;index;not null;column:course_id" json:"course_id"`
  ContentID uuid.UUID `gorm:"type:uuid;not null;column:content_id" json:"content_id"`
  Kind      string    `gorm:"not null;default:'haspart';column:kind" json:"kind"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ExperienceRelation) TableName() string {
  return "experience_relation"
}
