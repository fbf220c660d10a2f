package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	coursemodels "campusgate/internal/course/models"
	coursestore "campusgate/internal/course/store"
	"campusgate/internal/enrollment"
	jwttoken "campusgate/internal/jwt_token"
	"campusgate/internal/password"
	"campusgate/internal/revocation"
	"campusgate/internal/student/models"
	studentstore "campusgate/internal/student/store/student"
	id "campusgate/pkg/domain"
	dErrors "campusgate/pkg/domain-errors"
)

type fixture struct {
	svc         *Service
	students    *studentstore.InMemoryStore
	courses     *coursestore.InMemoryStore
	enrollments *enrollment.InMemoryStore
	revocations *revocation.InMemoryList
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		students:    studentstore.New(),
		courses:     coursestore.New(),
		enrollments: enrollment.New(),
		revocations: revocation.NewMemory(),
	}
	f.svc = NewService(
		f.students,
		f.courses,
		f.enrollments,
		password.NewHasher(bcrypt.MinCost),
		jwttoken.NewJWTService("test-signing-key", "campusgate", "campusgate-clients"),
		f.revocations,
		time.Hour,
	)
	return f
}

func (f *fixture) register(t *testing.T, username string) *models.Student {
	t.Helper()
	student, err := f.svc.Register(context.Background(), &models.RegisterRequest{
		Username: username,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return student
}

func (f *fixture) addCourse(t *testing.T, name string) *coursemodels.Course {
	t.Helper()
	course := &coursemodels.Course{
		ID:        id.NewCourseID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.courses.Create(context.Background(), course))
	return course
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates student with forced role and hashed password", func(t *testing.T) {
		f := newFixture(t)

		student, err := f.svc.Register(ctx, &models.RegisterRequest{
			Username: "Ada.Lovelace",
			Password: "correct-horse",
			Role:     "ADMIN_ROLE",
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
		})
		require.NoError(t, err)

		require.Equal(t, "ada.lovelace", student.Username)
		require.Equal(t, models.RoleStudent, student.Role)
		require.NotEmpty(t, student.PasswordHash)
		require.NotEqual(t, "correct-horse", student.PasswordHash)
		require.Empty(t, student.AssignedCourses)
		require.False(t, student.ID.IsNil())
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "ada")

		_, err := f.svc.Register(ctx, &models.RegisterRequest{
			Username: "ADA",
			Password: "another-horse",
		})
		require.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("rejects short password", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(ctx, &models.RegisterRequest{
			Username: "ada",
			Password: "short",
		})
		require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects nil request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(ctx, nil)
		require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns claims and a valid token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")

		result, err := f.svc.Login(ctx, &models.LoginRequest{
			Username: "Ada",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		require.Equal(t, registered.ID.String(), result.Student.UID)
		require.Equal(t, "ada", result.Student.Username)
		require.Equal(t, string(models.RoleStudent), result.Student.Role)

		claims, err := jwttoken.NewJWTService("test-signing-key", "campusgate", "campusgate-clients").
			ValidateToken(result.Token)
		require.NoError(t, err)
		require.Equal(t, registered.ID.String(), claims.UID)
		require.Equal(t, "ada", claims.Username)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "ada")

		_, unknownErr := f.svc.Login(ctx, &models.LoginRequest{
			Username: "nobody",
			Password: "correct-horse",
		})
		_, wrongErr := f.svc.Login(ctx, &models.LoginRequest{
			Username: "ada",
			Password: "wrong-horse",
		})

		require.True(t, dErrors.HasCode(unknownErr, dErrors.CodeNotFound))
		require.True(t, dErrors.HasCode(wrongErr, dErrors.CodeNotFound))
		require.Equal(t, dErrors.MessageOf(unknownErr), dErrors.MessageOf(wrongErr))
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Login(ctx, &models.LoginRequest{Username: "ada"})
		require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestEditProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates username only", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")

		updated, err := f.svc.EditProfile(ctx, registered.ID, &models.EditRequest{Username: "Ada.L"})
		require.NoError(t, err)
		require.Equal(t, "ada.l", updated.Username)

		// The password is untouched, so the old one still logs in.
		_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "ada.l", Password: "correct-horse"})
		require.NoError(t, err)
	})

	t.Run("re-hashes a submitted password", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")

		updated, err := f.svc.EditProfile(ctx, registered.ID, &models.EditRequest{Password: "fresh-horse-42"})
		require.NoError(t, err)
		require.NotEqual(t, "fresh-horse-42", updated.PasswordHash)

		_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "ada", Password: "fresh-horse-42"})
		require.NoError(t, err)

		_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "ada", Password: "correct-horse"})
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("rejects empty update", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")

		_, err := f.svc.EditProfile(ctx, registered.ID, &models.EditRequest{})
		require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "ada")
		registered := f.register(t, "grace")

		_, err := f.svc.EditProfile(ctx, registered.ID, &models.EditRequest{Username: "ada"})
		require.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.EditProfile(ctx, id.NewStudentID(), &models.EditRequest{Username: "ghost"})
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the student, its enrollments, and revokes tokens", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")
		course := f.addCourse(t, "Mathematics")
		require.NoError(t, f.svc.AssignCourse(ctx, registered.ID, course.ID))

		require.NoError(t, f.svc.DeleteProfile(ctx, registered.ID))

		_, err := f.svc.Profile(ctx, registered.ID)
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

		students, err := f.enrollments.StudentsOf(ctx, course.ID)
		require.NoError(t, err)
		require.Empty(t, students)

		revoked, err := f.revocations.IsRevoked(ctx, registered.ID.String())
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")

		require.NoError(t, f.svc.DeleteProfile(ctx, registered.ID))
		err := f.svc.DeleteProfile(ctx, registered.ID)
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestAssignCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("links both directions in assignment order", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")
		math := f.addCourse(t, "Mathematics")
		physics := f.addCourse(t, "Physics")

		require.NoError(t, f.svc.AssignCourse(ctx, registered.ID, math.ID))
		require.NoError(t, f.svc.AssignCourse(ctx, registered.ID, physics.ID))

		profile, err := f.svc.Profile(ctx, registered.ID)
		require.NoError(t, err)
		require.Equal(t, []id.CourseID{math.ID, physics.ID}, profile.AssignedCourses)

		students, err := f.enrollments.StudentsOf(ctx, math.ID)
		require.NoError(t, err)
		require.Equal(t, []id.StudentID{registered.ID}, students)
	})

	t.Run("enforces the assignment cap", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")
		for _, name := range []string{"Mathematics", "Physics", "Chemistry"} {
			course := f.addCourse(t, name)
			require.NoError(t, f.svc.AssignCourse(ctx, registered.ID, course.ID))
		}

		extra := f.addCourse(t, "Biology")
		err := f.svc.AssignCourse(ctx, registered.ID, extra.ID)
		require.True(t, dErrors.HasCode(err, dErrors.CodeLimitExceeded))

		profile, err := f.svc.Profile(ctx, registered.ID)
		require.NoError(t, err)
		require.Len(t, profile.AssignedCourses, models.MaxAssignedCourses)
	})

	t.Run("rejects a duplicate assignment", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")
		course := f.addCourse(t, "Mathematics")
		require.NoError(t, f.svc.AssignCourse(ctx, registered.ID, course.ID))

		err := f.svc.AssignCourse(ctx, registered.ID, course.ID)
		require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("cap check precedes the course lookup", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")
		for _, name := range []string{"Mathematics", "Physics", "Chemistry"} {
			course := f.addCourse(t, name)
			require.NoError(t, f.svc.AssignCourse(ctx, registered.ID, course.ID))
		}

		// The course does not exist, but the cap error wins.
		err := f.svc.AssignCourse(ctx, registered.ID, id.NewCourseID())
		require.True(t, dErrors.HasCode(err, dErrors.CodeLimitExceeded))
	})

	t.Run("unknown course", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "ada")

		err := f.svc.AssignCourse(ctx, registered.ID, id.NewCourseID())
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newFixture(t)
		course := f.addCourse(t, "Mathematics")

		err := f.svc.AssignCourse(ctx, id.NewStudentID(), course.ID)
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
