// Package store persists course records. Course lifecycle is external to the
// student workflow; this store only supports provisioning (seed), lookup, and
// listing.
package store

import (
	"context"
	"fmt"
	"sync"

	"campusgate/internal/course/models"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
)

// InMemoryStore stores courses in memory for tests/dev.
type InMemoryStore struct {
	mu     sync.RWMutex
	byID   map[id.CourseID]models.Course
	byName map[string]id.CourseID
}

// New constructs an empty in-memory course store.
func New() *InMemoryStore {
	return &InMemoryStore{
		byID:   make(map[id.CourseID]models.Course),
		byName: make(map[string]id.CourseID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[course.Name]; exists {
		return fmt.Errorf("course %q already exists: %w", course.Name, sentinel.ErrConflict)
	}

	s.byID[course.ID] = *course
	s.byName[course.Name] = course.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, courseID id.CourseID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.byID[courseID]
	if !ok {
		return nil, fmt.Errorf("course not found: %w", sentinel.ErrNotFound)
	}
	return &course, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]models.Course, 0, len(s.byID))
	for _, course := range s.byID {
		courses = append(courses, course)
	}
	return courses, nil
}
