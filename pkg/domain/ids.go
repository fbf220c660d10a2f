// Package domain holds typed identifiers shared across bounded contexts.
//
// IDs are distinct types over uuid.UUID so a CourseID can never be passed
// where a StudentID is expected. Parsing enforces the trust-boundary
// invariant: IDs must be valid, non-empty, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "campusgate/pkg/domain-errors"
)

// StudentID identifies a student aggregate.
type StudentID uuid.UUID

// CourseID identifies a course aggregate.
type CourseID uuid.UUID

// NewStudentID generates a fresh student ID.
func NewStudentID() StudentID { return StudentID(uuid.New()) }

// NewCourseID generates a fresh course ID.
func NewCourseID() CourseID { return CourseID(uuid.New()) }

func (s StudentID) String() string { return uuid.UUID(s).String() }
func (s StudentID) IsNil() bool    { return uuid.UUID(s) == uuid.Nil }

func (c CourseID) String() string { return uuid.UUID(c).String() }
func (c CourseID) IsNil() bool    { return uuid.UUID(c) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (s StudentID) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (c CourseID) MarshalText() ([]byte, error)  { return []byte(c.String()), nil }

func (s *StudentID) UnmarshalText(b []byte) error {
	id, err := parseUUID(string(b))
	if err != nil {
		return err
	}
	*s = StudentID(id)
	return nil
}

func (c *CourseID) UnmarshalText(b []byte) error {
	id, err := parseUUID(string(b))
	if err != nil {
		return err
	}
	*c = CourseID(id)
	return nil
}

// ParseStudentID parses and validates a student ID from its string form.
func ParseStudentID(raw string) (StudentID, error) {
	id, err := parseUUID(raw)
	if err != nil {
		return StudentID{}, err
	}
	return StudentID(id), nil
}

// ParseCourseID parses and validates a course ID from its string form.
func ParseCourseID(raw string) (CourseID, error) {
	id, err := parseUUID(raw)
	if err != nil {
		return CourseID{}, err
	}
	return CourseID(id), nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must be a valid UUID")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must not be the nil UUID")
	}
	return id, nil
}
