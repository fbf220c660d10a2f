package store

import (
	"context"
	"errors"
	"time"

	"campusgate/internal/course/models"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
	platformstrings "campusgate/pkg/platform/strings"
)

// Creator is implemented by both course store variants.
type Creator interface {
	Create(ctx context.Context, course *models.Course) error
}

// Store is the full course store contract, satisfied by the in-memory and
// PostgreSQL variants.
type Store interface {
	Creator
	FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
}

// Seed provisions courses by name. Existing names are skipped, so startup can
// run this unconditionally.
func Seed(ctx context.Context, store Creator, names []string) error {
	now := time.Now()
	for _, name := range platformstrings.DedupeAndTrim(names) {
		course := &models.Course{
			ID:        id.NewCourseID(),
			Name:      name,
			CreatedAt: now,
		}
		if err := store.Create(ctx, course); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return err
		}
	}
	return nil
}
