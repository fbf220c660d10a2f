package service

import (
	"context"
	"errors"

	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	dErrors "campusgate/pkg/domain-errors"
	"campusgate/pkg/platform/sentinel"
)

// AssignCourse links a course to a student, enforcing the assignment cap and
// rejecting duplicates. The checks run in a fixed order so the caller always
// sees the same failure for the same state: missing student, then cap, then
// duplicate, then missing course. The enrollment store re-checks cap and
// duplicate atomically, so concurrent assignments cannot overshoot the cap.
func (s *Service) AssignCourse(ctx context.Context, studentID id.StudentID, courseID id.CourseID) error {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}

	assigned, err := s.enrollments.CoursesOf(ctx, studentID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load enrollments")
	}
	if len(assigned) >= models.MaxAssignedCourses {
		return dErrors.New(dErrors.CodeLimitExceeded, "Student is already assigned the maximum number of courses")
	}
	for _, c := range assigned {
		if c == courseID {
			return dErrors.New(dErrors.CodeBadRequest, "Student is already assigned to this course")
		}
	}

	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Course not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load course")
	}

	if err := s.enrollments.Assign(ctx, studentID, courseID); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrLimitExceeded):
			return dErrors.New(dErrors.CodeLimitExceeded, "Student is already assigned the maximum number of courses")
		case errors.Is(err, sentinel.ErrConflict):
			return dErrors.New(dErrors.CodeBadRequest, "Student is already assigned to this course")
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign course")
	}
	return nil
}
