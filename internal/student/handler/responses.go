package handler

import (
	"fmt"
	"time"

	"campusgate/internal/student/models"
	id "campusgate/pkg/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

// studentResponse is the public projection of a student record. The password
// hash never appears here.
type studentResponse struct {
	UID             id.StudentID  `json:"uid"`
	Username        string        `json:"username"`
	Role            string        `json:"role"`
	FullName        string        `json:"fullName,omitempty"`
	Email           string        `json:"email,omitempty"`
	AssignedCourses []id.CourseID `json:"assignedCourses"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func newStudentResponse(student *models.Student) studentResponse {
	courses := student.AssignedCourses
	if courses == nil {
		courses = []id.CourseID{}
	}
	return studentResponse{
		UID:             student.ID,
		Username:        student.Username,
		Role:            string(student.Role),
		FullName:        student.FullName,
		Email:           student.Email,
		AssignedCourses: courses,
		CreatedAt:       student.CreatedAt,
		UpdatedAt:       student.UpdatedAt,
	}
}

type registerResponse struct {
	Message string          `json:"message"`
	Student studentResponse `json:"student"`
}

func newRegisterResponse(student *models.Student) registerResponse {
	return registerResponse{
		Message: fmt.Sprintf("Registered successfully, can log in with username %s", student.Username),
		Student: newStudentResponse(student),
	}
}

type loginResponse struct {
	Message string               `json:"message"`
	Student models.LoggedStudent `json:"loggedStudent"`
	Token   string               `json:"token"`
}

func newLoginResponse(result *models.LoginResult) loginResponse {
	return loginResponse{
		Message: fmt.Sprintf("Welcome %s", result.Student.Username),
		Student: result.Student,
		Token:   result.Token,
	}
}

type editResponse struct {
	Message string          `json:"message"`
	Student studentResponse `json:"student"`
}

func newEditResponse(student *models.Student) editResponse {
	return editResponse{
		Message: "Student profile updated successfully",
		Student: newStudentResponse(student),
	}
}
