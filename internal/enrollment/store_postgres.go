package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
)

// PostgresStore persists enrollments as a join table. Assign runs in a single
// transaction with the student row locked, so the cap check and the insert
// cannot interleave with a concurrent assignment.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed enrollment store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Assign(ctx context.Context, studentID id.StudentID, courseID id.CourseID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin assign tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the student row to serialize concurrent assignments.
	var one int
	err = tx.QueryRow(ctx, `SELECT 1 FROM students WHERE id = $1 FOR UPDATE`, studentID.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("lock student: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT course_id FROM enrollments WHERE student_id = $1 ORDER BY position`,
		studentID.String())
	if err != nil {
		return fmt.Errorf("load enrollments: %w", err)
	}
	courses, err := collectCourseIDs(rows)
	if err != nil {
		return err
	}

	if len(courses) >= models.MaxAssignedCourses {
		return fmt.Errorf("student already holds %d courses: %w", len(courses), sentinel.ErrLimitExceeded)
	}
	for _, c := range courses {
		if c == courseID {
			return fmt.Errorf("course already assigned: %w", sentinel.ErrConflict)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO enrollments (student_id, course_id, position, created_at) VALUES ($1, $2, $3, now())`,
		studentID.String(), courseID.String(), len(courses))
	if err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit assign tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) CoursesOf(ctx context.Context, studentID id.StudentID) ([]id.CourseID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT course_id FROM enrollments WHERE student_id = $1 ORDER BY position`,
		studentID.String())
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	return collectCourseIDs(rows)
}

func (s *PostgresStore) StudentsOf(ctx context.Context, courseID id.CourseID) ([]id.StudentID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT student_id FROM enrollments WHERE course_id = $1 ORDER BY created_at`,
		courseID.String())
	if err != nil {
		return nil, fmt.Errorf("load course roster: %w", err)
	}
	defer rows.Close()

	students := make([]id.StudentID, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		studentID, err := id.ParseStudentID(raw)
		if err != nil {
			return nil, fmt.Errorf("scan roster id: %w", err)
		}
		students = append(students, studentID)
	}
	return students, rows.Err()
}

func (s *PostgresStore) RemoveStudent(ctx context.Context, studentID id.StudentID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1`, studentID.String())
	if err != nil {
		return fmt.Errorf("remove enrollments: %w", err)
	}
	return nil
}

func collectCourseIDs(rows pgx.Rows) ([]id.CourseID, error) {
	defer rows.Close()

	courses := make([]id.CourseID, 0, models.MaxAssignedCourses)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan enrollment row: %w", err)
		}
		courseID, err := id.ParseCourseID(raw)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment id: %w", err)
		}
		courses = append(courses, courseID)
	}
	return courses, rows.Err()
}
