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

// Register creates a new student account. The role is always forced to
// STUDENT_ROLE regardless of what the caller submits, and the password is
// stored only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.Student, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "missing request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := time.Now().UTC()
	student := &models.Student{
		ID:           id.NewStudentID(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		FullName:     req.FullName,
		Email:        req.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Username already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create student")
	}

	student.AssignedCourses = []id.CourseID{}
	return student, nil
}
