// Package handler wires the student endpoints to the student service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"campusgate/internal/platform/metrics"
	"campusgate/internal/platform/middleware"
	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
	dErrors "campusgate/pkg/domain-errors"
	"campusgate/pkg/platform/httputil"
)

// Service defines the student operations the handler exposes.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Student, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Profile(ctx context.Context, studentID id.StudentID) (*models.Student, error)
	EditProfile(ctx context.Context, studentID id.StudentID, req *models.EditRequest) (*models.Student, error)
	DeleteProfile(ctx context.Context, studentID id.StudentID) error
	AssignCourse(ctx context.Context, studentID id.StudentID, courseID id.CourseID) error
}

// Handler serves the student endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a student handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts the public endpoints on the router. The route names follow
// the public API contract, casing included.
func (h *Handler) Register(r chi.Router) {
	r.Post("/Studentregister", h.HandleRegister)
	r.Post("/Login", h.HandleLogin)
	r.Put("/{studentId}/edit", h.HandleEdit)
	r.Delete("/{studentId}/delete", h.HandleDelete)
	r.Put("/{studentId}/assigncourse", h.HandleAssignCourse)
}

// RegisterAuthenticated mounts the endpoints that require a valid token.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/me", h.HandleMe)
}

// HandleRegister handles POST /Studentregister requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	student, err := h.service.Register(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"request_id", requestID,
			"username", req.Username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.StudentsRegistered.Inc()
	h.logger.InfoContext(ctx, "student registered",
		"request_id", requestID,
		"student_id", student.ID,
		"username", student.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, newRegisterResponse(student))
}

// HandleLogin handles POST /Login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	result, err := h.service.Login(ctx, req)
	if err != nil {
		h.metrics.LoginsFailed.Inc()
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestID,
			"username", req.Username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.LoginsSucceeded.Inc()
	h.logger.InfoContext(ctx, "student logged in",
		"request_id", requestID,
		"student_id", result.Student.UID,
		"username", result.Student.Username,
	)

	httputil.WriteJSON(w, http.StatusOK, newLoginResponse(result))
}

// HandleEdit handles PUT /{studentId}/edit requests.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	studentID, err := id.ParseStudentID(chi.URLParam(r, "studentId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.EditRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	student, err := h.service.EditProfile(ctx, studentID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "profile edit failed",
			"request_id", requestID,
			"student_id", studentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile updated",
		"request_id", requestID,
		"student_id", student.ID,
	)

	httputil.WriteJSON(w, http.StatusOK, newEditResponse(student))
}

// HandleDelete handles DELETE /{studentId}/delete requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	studentID, err := id.ParseStudentID(chi.URLParam(r, "studentId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteProfile(ctx, studentID); err != nil {
		h.logger.WarnContext(ctx, "profile delete failed",
			"request_id", requestID,
			"student_id", studentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile deleted",
		"request_id", requestID,
		"student_id", studentID,
	)

	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Student profile deleted successfully"})
}

// HandleAssignCourse handles PUT /{studentId}/assigncourse requests.
func (h *Handler) HandleAssignCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	studentID, err := id.ParseStudentID(chi.URLParam(r, "studentId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.AssignCourseRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	courseID, err := id.ParseCourseID(req.CourseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.AssignCourse(ctx, studentID, courseID); err != nil {
		h.logger.WarnContext(ctx, "course assignment failed",
			"request_id", requestID,
			"student_id", studentID,
			"course_id", courseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.CoursesAssigned.Inc()
	h.logger.InfoContext(ctx, "course assigned",
		"request_id", requestID,
		"student_id", studentID,
		"course_id", courseID,
	)

	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Course assigned to student successfully"})
}

// HandleMe handles GET /me requests for the authenticated student.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	studentID, err := id.ParseStudentID(middleware.GetStudentID(ctx))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	student, err := h.service.Profile(ctx, studentID)
	if err != nil {
		h.logger.WarnContext(ctx, "profile lookup failed",
			"request_id", requestID,
			"student_id", studentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newStudentResponse(student))
}
