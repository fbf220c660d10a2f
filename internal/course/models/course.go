// Package models holds the course aggregate.
package models

import (
	"time"

	id "campusgate/pkg/domain"
)

// Course is the course aggregate. Course lifecycle is external to this
// service: records are seeded or provisioned elsewhere, and the workflow only
// reads them and appends enrolled students.
type Course struct {
	ID        id.CourseID    `json:"id"`
	Name      string         `json:"name"`
	Students  []id.StudentID `json:"students"`
	CreatedAt time.Time      `json:"createdAt"`
}
