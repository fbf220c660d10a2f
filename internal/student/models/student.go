// Package models holds the student aggregate and the request/result types of
// the student workflow.
package models

import (
	"strings"
	"time"

	id "campusgate/pkg/domain"
)

// Role is the access role stored on a student record.
type Role string

// RoleStudent is the only role this service assigns. Registration forcibly
// normalizes any caller-supplied role to this value.
const RoleStudent Role = "STUDENT_ROLE"

// MaxAssignedCourses caps how many courses a student may hold at once.
const MaxAssignedCourses = 3

// Student is the student aggregate. PasswordHash never contains plaintext;
// AssignedCourses is ordered, duplicate-free, and at most MaxAssignedCourses
// long.
type Student struct {
	ID              id.StudentID  `json:"uid"`
	Username        string        `json:"username"`
	PasswordHash    string        `json:"-"`
	Role            Role          `json:"role"`
	FullName        string        `json:"fullName,omitempty"`
	Email           string        `json:"email,omitempty"`
	AssignedCourses []id.CourseID `json:"assignedCourses"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// HasCourse reports whether the course is already assigned.
func (s *Student) HasCourse(courseID id.CourseID) bool {
	for _, c := range s.AssignedCourses {
		if c == courseID {
			return true
		}
	}
	return false
}

// AtCourseCap reports whether the assignment cap is reached.
func (s *Student) AtCourseCap() bool {
	return len(s.AssignedCourses) >= MaxAssignedCourses
}

// LoggedStudent is the claims record embedded in issued tokens and returned
// by login.
type LoggedStudent struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	Student LoggedStudent
	Token   string
}

// NormalizeUsername canonicalizes a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
