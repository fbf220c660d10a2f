package service

import (
	"context"
	"errors"
	"time"

	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	dErrors "campusgate/pkg/domain-errors"
	"campusgate/pkg/platform/sentinel"
)

// Profile returns the student record with its assigned courses attached.
func (s *Service) Profile(ctx context.Context, studentID id.StudentID) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}
	return s.withCourses(ctx, student)
}

// EditProfile updates the submitted fields only. A submitted password is
// re-hashed; the stored hash is never overwritten with plaintext.
func (s *Service) EditProfile(ctx context.Context, studentID id.StudentID, req *models.EditRequest) (*models.Student, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "missing request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}

	if req.Username != "" {
		student.Username = req.Username
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
		}
		student.PasswordHash = hash
	}
	student.UpdatedAt = time.Now().UTC()

	if err := s.students.Update(ctx, student); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "Username already taken")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update student")
	}

	return s.withCourses(ctx, student)
}

// DeleteProfile removes the student, drops every enrollment reference in both
// directions, and revokes outstanding tokens for the account.
func (s *Service) DeleteProfile(ctx context.Context, studentID id.StudentID) error {
	if err := s.students.Delete(ctx, studentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Student not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete student")
	}

	if err := s.enrollments.RemoveStudent(ctx, studentID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove enrollments")
	}

	if s.revocations != nil {
		if err := s.revocations.Revoke(ctx, studentID.String(), s.accessTTL); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke tokens")
		}
	}
	return nil
}

func (s *Service) withCourses(ctx context.Context, student *models.Student) (*models.Student, error) {
	courses, err := s.enrollments.CoursesOf(ctx, student.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load enrollments")
	}
	if courses == nil {
		courses = []id.CourseID{}
	}
	student.AssignedCourses = courses
	return student, nil
}
