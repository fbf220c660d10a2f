package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "campusgate/pkg/domain-errors"
)

// TestParseStudentID_Invariants validates the parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseStudentID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseStudentID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseStudentID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseStudentID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseStudentID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, StudentID(validUUID), id)
	})
}

// TestParseID_TrustBoundary validates parsing rules at API entry points where
// the studentId path parameter and courseId body field arrive as raw strings.
func TestParseID_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE students;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCourseID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestTypeDistinction verifies the compiler enforces type safety.
func TestTypeDistinction(t *testing.T) {
	studentID := StudentID(uuid.New())
	courseID := CourseID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ StudentID = courseID   // compile error
	// var _ CourseID = studentID   // compile error

	assert.NotEqual(t, uuid.UUID(studentID), uuid.UUID(courseID))
}

func TestIDTextRoundTrip(t *testing.T) {
	id := NewCourseID()
	text, err := id.MarshalText()
	require.NoError(t, err)

	var parsed CourseID
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, id, parsed)
}
