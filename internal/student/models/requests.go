package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "campusgate/pkg/domain-errors"
)

var validate = validator.New()

// RegisterRequest is the registration payload. Role is accepted but ignored:
// Normalize overwrites it with the student designation before the record is
// built, so callers cannot grant themselves another role.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty"`
	FullName string `json:"fullName,omitempty" validate:"max=100"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// Normalize canonicalizes the payload. This is a pure input transformation,
// not a mutation of stored state.
func (r *RegisterRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Role = string(RoleStudent)
}

// Validate checks the payload, returning a coded bad-request error.
func (r *RegisterRequest) Validate() error {
	return validateStruct(r)
}

// LoginRequest is the credential payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
}

func (r *LoginRequest) Validate() error {
	return validateStruct(r)
}

// EditRequest updates profile fields in place. Empty fields are left
// untouched; a submitted password is re-hashed before storage.
type EditRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

func (r *EditRequest) Normalize() {
	if r.Username != "" {
		r.Username = NormalizeUsername(r.Username)
	}
}

func (r *EditRequest) Validate() error {
	if r.Username == "" && r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "nothing to update")
	}
	return validateStruct(r)
}

// AssignCourseRequest carries the course to assign.
type AssignCourseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

func (r *AssignCourseRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	validateErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request")
	}

	msgs := make([]string, 0, len(validateErrs))
	for _, e := range validateErrs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("field %s has invalid length", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return dErrors.New(dErrors.CodeBadRequest, strings.Join(msgs, ", "))
}
