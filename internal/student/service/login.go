package service

import (
	"context"
	"errors"

	"campusgate/internal/student/models"
	dErrors "campusgate/pkg/domain-errors"
	"campusgate/pkg/platform/sentinel"
)

// Login verifies credentials and issues an access token. An unknown username
// and a wrong password produce the same error so the response does not leak
// which accounts exist.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "missing request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	student, err := s.students.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up student")
	}

	if !s.hasher.Compare(req.Password, student.PasswordHash) {
		return nil, dErrors.New(dErrors.CodeNotFound, "Invalid credentials")
	}

	token, err := s.tokens.GenerateToken(student.ID, student.Username, string(student.Role), s.accessTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	return &models.LoginResult{
		Student: models.LoggedStudent{
			UID:      student.ID.String(),
			Username: student.Username,
			Role:     string(student.Role),
		},
		Token: token,
	}, nil
}
