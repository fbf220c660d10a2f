package student

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusgate/internal/platform/postgres"
	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
)

// PostgresStore persists students in PostgreSQL. This store is pure I/O;
// workflow rules live in the service layer.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed student store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, username, password_hash, role, full_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		student.ID.String(),
		student.Username,
		student.PasswordHash,
		string(student.Role),
		student.FullName,
		student.Email,
		student.CreatedAt,
		student.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("username %q already taken: %w", student.Username, sentinel.ErrConflict)
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, studentID id.StudentID) (*models.Student, error) {
	query := `
		SELECT id, username, password_hash, role, full_name, email, created_at, updated_at
		FROM students
		WHERE id = $1
	`
	return scanStudent(s.pool.QueryRow(ctx, query, studentID.String()))
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.Student, error) {
	query := `
		SELECT id, username, password_hash, role, full_name, email, created_at, updated_at
		FROM students
		WHERE username = $1
	`
	return scanStudent(s.pool.QueryRow(ctx, query, username))
}

func (s *PostgresStore) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET username = $2, password_hash = $3, full_name = $4, email = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		student.ID.String(),
		student.Username,
		student.PasswordHash,
		student.FullName,
		student.Email,
		student.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("username %q already taken: %w", student.Username, sentinel.ErrConflict)
		}
		return fmt.Errorf("update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, studentID id.StudentID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, studentID.String())
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var (
		student models.Student
		rawID   string
		rawRole string
	)
	err := row.Scan(
		&rawID,
		&student.Username,
		&student.PasswordHash,
		&rawRole,
		&student.FullName,
		&student.Email,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("scan student: %w", err)
	}

	studentID, err := id.ParseStudentID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan student id: %w", err)
	}
	student.ID = studentID
	student.Role = models.Role(rawRole)
	return &student, nil
}
