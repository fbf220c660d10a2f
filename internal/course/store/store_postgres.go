package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusgate/internal/course/models"
	"campusgate/internal/platform/postgres"
	id "campusgate/pkg/domain"
	"campusgate/pkg/platform/sentinel"
)

// PostgresStore persists courses in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed course store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, course *models.Course) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO courses (id, name, created_at) VALUES ($1, $2, $3)`,
		course.ID.String(), course.Name, course.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("course %q already exists: %w", course.Name, sentinel.ErrConflict)
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	var (
		course models.Course
		rawID  string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM courses WHERE id = $1`,
		courseID.String()).Scan(&rawID, &course.Name, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("course not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	parsed, err := id.ParseCourseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan course id: %w", err)
	}
	course.ID = parsed
	return &course, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, created_at FROM courses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var (
			course models.Course
			rawID  string
		)
		if err := rows.Scan(&rawID, &course.Name, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		parsed, err := id.ParseCourseID(rawID)
		if err != nil {
			return nil, fmt.Errorf("scan course id: %w", err)
		}
		course.ID = parsed
		courses = append(courses, course)
	}
	return courses, rows.Err()
}
