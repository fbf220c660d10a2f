// Package enrollment owns the student<->course reference lists.
//
// Keeping two independent lists (assignedCourses on the student, students on
// the course) updated by separate writes would race on the course cap and
// could diverge if the second write failed. Both directions live here instead,
// behind a single atomic Assign, so the cap check and both appends commit or
// fail together.
//
// Error contract: Assign returns sentinel.ErrLimitExceeded when the student
// already holds the maximum number of courses, sentinel.ErrConflict when the
// course is already assigned, and sentinel.ErrNotFound when the student does
// not exist (PostgreSQL only; the memory store trusts the service's existence
// check).
package enrollment

import (
	"context"
	"fmt"
	"sync"

	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
)

// InMemoryStore keeps both reference directions under one mutex, making
// Assign a transactional read-modify-write.
type InMemoryStore struct {
	mu        sync.RWMutex
	byStudent map[id.StudentID][]id.CourseID
	byCourse  map[id.CourseID][]id.StudentID
}

// New constructs an empty in-memory enrollment store.
func New() *InMemoryStore {
	return &InMemoryStore{
		byStudent: make(map[id.StudentID][]id.CourseID),
		byCourse:  make(map[id.CourseID][]id.StudentID),
	}
}

// Assign appends the course to the student and the student to the course,
// enforcing the cap and duplicate invariants under the lock. Two concurrent
// calls can never push a student past the cap.
func (s *InMemoryStore) Assign(_ context.Context, studentID id.StudentID, courseID id.CourseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses := s.byStudent[studentID]
	if len(courses) >= models.MaxAssignedCourses {
		return fmt.Errorf("student already holds %d courses: %w", len(courses), sentinel.ErrLimitExceeded)
	}
	for _, c := range courses {
		if c == courseID {
			return fmt.Errorf("course already assigned: %w", sentinel.ErrConflict)
		}
	}

	s.byStudent[studentID] = append(courses, courseID)
	s.byCourse[courseID] = append(s.byCourse[courseID], studentID)
	return nil
}

// CoursesOf returns the ordered course list of a student. A student with no
// enrollments yields an empty slice, not an error.
func (s *InMemoryStore) CoursesOf(_ context.Context, studentID id.StudentID) ([]id.CourseID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := s.byStudent[studentID]
	out := make([]id.CourseID, len(courses))
	copy(out, courses)
	return out, nil
}

// StudentsOf returns the students enrolled in a course.
func (s *InMemoryStore) StudentsOf(_ context.Context, courseID id.CourseID) ([]id.StudentID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := s.byCourse[courseID]
	out := make([]id.StudentID, len(students))
	copy(out, students)
	return out, nil
}

// RemoveStudent drops every enrollment of a deleted student, both directions.
func (s *InMemoryStore) RemoveStudent(_ context.Context, studentID id.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, courseID := range s.byStudent[studentID] {
		students := s.byCourse[courseID]
		for i, sid := range students {
			if sid == studentID {
				s.byCourse[courseID] = append(students[:i], students[i+1:]...)
				break
			}
		}
	}
	delete(s.byStudent, studentID)
	return nil
}
