package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v *stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return v.claims, v.err
}

type stubRevocations struct {
	revoked bool
	err     error
}

func (r *stubRevocations) IsRevoked(context.Context, string) (bool, error) {
	return r.revoked, r.err
}

func authRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "error body must be valid JSON")
	return body["message"]
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing bearer token", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{}, &stubRevocations{}, logger)

		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, authRequest(""))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "missing bearer token", decodeMessage(t, rec))
	})

	t.Run("invalid token", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{err: errors.New("bad signature")}, &stubRevocations{}, logger)

		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, authRequest("garbage"))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid token", decodeMessage(t, rec))
	})

	t.Run("revoked token", func(t *testing.T) {
		validator := &stubValidator{claims: &JWTClaims{StudentID: "uid-1"}}
		mw := RequireAuth(validator, &stubRevocations{revoked: true}, logger)

		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, authRequest("valid"))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "token revoked", decodeMessage(t, rec))
	})

	t.Run("revocation check failure", func(t *testing.T) {
		validator := &stubValidator{claims: &JWTClaims{StudentID: "uid-1"}}
		mw := RequireAuth(validator, &stubRevocations{err: errors.New("redis down")}, logger)

		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, authRequest("valid"))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.NotEmpty(t, decodeMessage(t, rec))
	})

	t.Run("valid token injects identity", func(t *testing.T) {
		validator := &stubValidator{claims: &JWTClaims{
			StudentID: "uid-1",
			Username:  "ada",
			Role:      "STUDENT_ROLE",
		}}
		mw := RequireAuth(validator, &stubRevocations{}, logger)

		var gotID, gotUsername, gotRole string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = GetStudentID(r.Context())
			gotUsername = GetUsername(r.Context())
			gotRole = GetRole(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		rec := httptest.NewRecorder()
		mw(inner).ServeHTTP(rec, authRequest("valid"))

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "uid-1", gotID)
		require.Equal(t, "ada", gotUsername)
		require.Equal(t, "STUDENT_ROLE", gotRole)
	})
}
