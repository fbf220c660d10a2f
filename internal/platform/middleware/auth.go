package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"campusgate/pkg/platform/httputil"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// RevocationChecker reports whether a student's tokens have been revoked
// (profile deletion revokes all outstanding tokens).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, studentID string) (bool, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	StudentID string
	Username  string
	Role      string
}

// Context keys for storing authenticated student information.
type contextKeyStudentID struct{}
type contextKeyUsername struct{}
type contextKeyRole struct{}

var (
	ContextKeyStudentID = contextKeyStudentID{}
	ContextKeyUsername  = contextKeyUsername{}
	ContextKeyRole      = contextKeyRole{}
)

// GetStudentID retrieves the authenticated student ID from the context.
func GetStudentID(ctx context.Context) string {
	studentID, ok := ctx.Value(ContextKeyStudentID).(string)
	if !ok {
		return ""
	}
	return studentID
}

// GetUsername retrieves the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	username, ok := ctx.Value(ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return username
}

// GetRole retrieves the authenticated role from the context.
func GetRole(ctx context.Context) string {
	role, ok := ctx.Value(ContextKeyRole).(string)
	if !ok {
		return ""
	}
	return role
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	httputil.WriteJSON(w, status, map[string]string{"message": message})
}

// RequireAuth validates the Bearer token, checks the revocation list, and
// stores the student identity in the request context.
func RequireAuth(validator JWTValidator, revocation RevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				logger.WarnContext(r.Context(), "token validation failed",
					"request_id", GetRequestID(r.Context()),
					"error", err.Error(),
				)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			revoked, err := revocation.IsRevoked(r.Context(), claims.StudentID)
			if err != nil {
				logger.ErrorContext(r.Context(), "revocation check failed",
					"request_id", GetRequestID(r.Context()),
					"error", err.Error(),
				)
				writeJSONError(w, http.StatusServiceUnavailable, "authentication temporarily unavailable")
				return
			}
			if revoked {
				writeJSONError(w, http.StatusUnauthorized, "token revoked")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyStudentID, claims.StudentID)
			ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
			ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
