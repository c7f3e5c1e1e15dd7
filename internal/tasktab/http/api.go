package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/tasktab/tasktab/internal/tasktab/domain"
	"github.com/tasktab/tasktab/internal/tasktab/service"
	"github.com/tasktab/tasktab/internal/tasktab/store"
	"github.com/tasktab/tasktab/pkg/httpx"
	"github.com/tasktab/tasktab/pkg/slogx"
)

type credentialsRequest struct {
	Handle string `json:"handle"`
	Secret string `json:"secret"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type statsResponse struct {
	TotalTasks     int64    `json:"total_tasks"`
	CompletedTasks int64    `json:"completed_tasks"`
	PendingTasks   int64    `json:"pending_tasks"`
	AvgPriority    *float64 `json:"avg_priority"`
}

type profileResponse struct {
	User  userResponse  `json:"user"`
	Stats statsResponse `json:"stats"`
}

type taskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Priority     *int    `json:"priority"`
	AssignedDate *string `json:"assigned_date"`
	AssignedTime *string `json:"assigned_time"`
	DueDate      *string `json:"due_date"`
	DueTime      *string `json:"due_time"`
	Completed    *bool   `json:"completed"`
}

type taskResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Priority     int       `json:"priority"`
	AssignedDate string    `json:"assigned_date"`
	AssignedTime string    `json:"assigned_time"`
	DueDate      *string   `json:"due_date"`
	DueTime      *string   `json:"due_time"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type deletedTaskResponse struct {
	Deleted taskResponse `json:"deleted"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Handle: u.Handle, CreatedAt: u.CreatedAt}
}

func newTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Title:        t.Title,
		Description:  t.Description,
		Priority:     t.Priority,
		AssignedDate: t.AssignedDate,
		AssignedTime: t.AssignedTime,
		DueDate:      t.DueDate,
		DueTime:      t.DueTime,
		Completed:    t.Completed,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// writeServiceError classifies a service-layer error into the HTTP taxonomy.
// Store and infrastructure failures become a generic 500; the underlying
// cause goes to the operator log only.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", verr.Msg)
	case errors.Is(err, service.ErrHandleTaken):
		httpx.WriteError(w, http.StatusConflict, "conflict", "handle already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid handle or secret")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
