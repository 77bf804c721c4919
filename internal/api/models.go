package api

import (
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the signed bearer token for the Authorization header
	Token string `json:"token"`

	// Type is always "Bearer"
	Type string `json:"type"`

	ID       int64  `json:"id"`
	Username string `json:"username"`

	// ExpiresAt is the RFC 3339 timestamp after which the token is rejected
	ExpiresAt string `json:"expires_at"`
}

// TaskRequest defines the payload for creating and updating tasks.
// The owner is never part of the payload; it comes from the authenticated request.
type TaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"omitempty,oneof=PENDING COMPLETED"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
