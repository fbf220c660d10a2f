// Package student persists student records.
//
// Error contract: all store methods return sentinel.ErrNotFound when the
// requested record does not exist, sentinel.ErrConflict for uniqueness
// violations, and wrapped errors with context for infrastructure failures.
package student

import (
	"context"
	"fmt"
	"sync"

	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
)

// InMemoryStore stores students in memory for tests/dev.
type InMemoryStore struct {
	mu         sync.RWMutex
	byID       map[id.StudentID]models.Student
	byUsername map[string]id.StudentID
}

// New constructs an empty in-memory student store.
func New() *InMemoryStore {
	return &InMemoryStore{
		byID:       make(map[id.StudentID]models.Student),
		byUsername: make(map[string]id.StudentID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[student.Username]; exists {
		return fmt.Errorf("username %q already taken: %w", student.Username, sentinel.ErrConflict)
	}

	s.byID[student.ID] = *student
	s.byUsername[student.Username] = student.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, studentID id.StudentID) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.byID[studentID]
	if !ok {
		return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}
	return &student, nil
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	studentID, ok := s.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}
	student := s.byID[studentID]
	return &student, nil
}

func (s *InMemoryStore) Update(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[student.ID]
	if !ok {
		return fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}

	if student.Username != current.Username {
		if _, taken := s.byUsername[student.Username]; taken {
			return fmt.Errorf("username %q already taken: %w", student.Username, sentinel.ErrConflict)
		}
		delete(s.byUsername, current.Username)
		s.byUsername[student.Username] = student.ID
	}

	s.byID[student.ID] = *student
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, studentID id.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.byID[studentID]
	if !ok {
		return fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}

	delete(s.byUsername, student.Username)
	delete(s.byID, studentID)
	return nil
}
