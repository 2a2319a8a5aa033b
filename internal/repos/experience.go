package repos

import (
  "context"
  "errors"
  "fmt"

  "gorm.io/gorm"

  "github.com/openlearn/pulse-backend/internal/pkg/logger"
  "github.com/openlearn/pulse-backend/internal/types"
)

var (
  // ErrUnknownCourse: the course IRI has never been indexed.
  ErrUnknownCourse = errors.New("unknown course, it should be indexed first")
  // ErrCourseWithoutContent: the course exists but has no related content.
  ErrCourseWithoutContent = errors.New("no content indexed for course")
)

// ExperienceRepo resolves courses and their related content from the
// experience index. No window can be discovered for a course that is missing
// or empty, so both cases are fatal preconditions.
type ExperienceRepo interface {
  GetByIRI(ctx context.Context, tx *gorm.DB, iri string) (*types.Experience, error)
  // GetCourseActions returns the content experiences related to a course,
  // in relation insertion order.
  GetCourseActions(ctx context.Context, tx *gorm.DB, courseIRI string) ([]*types.Experience, error)
}

type experienceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewExperienceRepo(db *gorm.DB, baseLog *logger.Logger) ExperienceRepo {
  return &experienceRepo{db: db, log: baseLog.With("repo", "ExperienceRepo")}
}

func (er *experienceRepo) GetByIRI(ctx context.Context, tx *gorm.DB, iri string) (*types.Experience, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  var experience types.Experience
  err := transaction.WithContext(ctx).
    Where("iri = ?", iri).
    First(&experience).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &experience, nil
}

func (er *experienceRepo) GetCourseActions(ctx context.Context, tx *gorm.DB, courseIRI string) ([]*types.Experience, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }

  course, err := er.GetByIRI(ctx, transaction, courseIRI)
  if err != nil {
    return nil, fmt.Errorf("load course %s: %w", courseIRI, err)
  }
  if course == nil {
    return nil, fmt.Errorf("course %s: %w", courseIRI, ErrUnknownCourse)
  }

  var relations []*types.ExperienceRelation
  if err := transaction.WithContext(ctx).
    Where("course_id = ?", course.ID).
    Order("created_at ASC").
    Find(&relations).Error; err != nil {
    return nil, fmt.Errorf("load relations for course %s: %w", courseIRI, err)
  }
  if len(relations) == 0 {
    return nil, fmt.Errorf("course %s: %w", courseIRI, ErrCourseWithoutContent)
  }

  contents := make([]*types.Experience, 0, len(relations))
  for _, relation := range relations {
    var content types.Experience
    err := transaction.WithContext(ctx).
      Where("id = ?", relation.ContentID).
      First(&content).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("content %s for course %s: %w", relation.ContentID, courseIRI, ErrCourseWithoutContent)
    }
    if err != nil {
      return nil, fmt.Errorf("load content %s: %w", relation.ContentID, err)
    }
    contents = append(contents, &content)
  }
  return contents, nil
}
