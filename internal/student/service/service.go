// Package service implements the student workflow: registration, login,
// profile edit/delete, and course assignment. It orchestrates the stores and
// credential/token collaborators and owns every invariant that spans them.
package service

import (
	"context"
	"time"

	coursemodels "campusgate/internal/course/models"
	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
)

// StudentStore persists student aggregates.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, studentID id.StudentID) (*models.Student, error)
	FindByUsername(ctx context.Context, username string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studentID id.StudentID) error
}

// CourseStore reads course aggregates; course lifecycle is external.
type CourseStore interface {
	FindByID(ctx context.Context, courseID id.CourseID) (*coursemodels.Course, error)
}

// EnrollmentStore owns both student<->course reference lists. Assign is
// atomic with respect to the course cap and duplicate checks.
type EnrollmentStore interface {
	Assign(ctx context.Context, studentID id.StudentID, courseID id.CourseID) error
	CoursesOf(ctx context.Context, studentID id.StudentID) ([]id.CourseID, error)
	StudentsOf(ctx context.Context, courseID id.CourseID) ([]id.StudentID, error)
	RemoveStudent(ctx context.Context, studentID id.StudentID) error
}

// PasswordHasher is the credential collaborator: hashing on the way in,
// verification at login.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}

// TokenIssuer signs time-bound tokens carrying the student's claims.
type TokenIssuer interface {
	GenerateToken(studentID id.StudentID, username string, role string, expiresIn time.Duration) (string, error)
}

// RevocationList invalidates outstanding tokens when a profile is deleted.
type RevocationList interface {
	Revoke(ctx context.Context, studentID string, ttl time.Duration) error
}

// Service is the student workflow core. It keeps transport concerns out of
// business logic.
type Service struct {
	students    StudentStore
	courses     CourseStore
	enrollments EnrollmentStore
	hasher      PasswordHasher
	tokens      TokenIssuer
	revocations RevocationList
	accessTTL   time.Duration
}

func NewService(
	students StudentStore,
	courses CourseStore,
	enrollments EnrollmentStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
	revocations RevocationList,
	accessTTL time.Duration,
) *Service {
	return &Service{
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		accessTTL:   accessTTL,
	}
}
