package http

import (
	"encoding/json"
	"net/http"

	"github.com/tasktab/tasktab/internal/tasktab/service"
	"github.com/tasktab/tasktab/pkg/httpx"
)

type TaskHandler struct {
	TaskService *service.TaskService
}

// HandleList returns all of the caller's tasks, most recently assigned first.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.List(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate validates and persists a new task for the caller.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	params := service.CreateTaskParams{
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
		Completed:   req.Completed,
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.AssignedDate != nil {
		params.AssignedDate = *req.AssignedDate
	}
	if req.AssignedTime != nil {
		params.AssignedTime = *req.AssignedTime
	}

	task, err := h.TaskService.Create(r.Context(), httpx.UserIDFromContext(r.Context()), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newTaskResponse(task))
}

// HandleGet fetches a single task. Tasks owned by other users are reported
// as not found.
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.Get(r.Context(), httpx.UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTaskResponse(task))
}

// HandleUpdate applies a partial update: absent fields keep their stored
// values.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	task, err := h.TaskService.Update(r.Context(), httpx.UserIDFromContext(r.Context()), r.PathValue("id"), service.UpdateTaskParams{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		AssignedDate: req.AssignedDate,
		AssignedTime: req.AssignedTime,
		DueDate:      req.DueDate,
		DueTime:      req.DueTime,
		Completed:    req.Completed,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTaskResponse(task))
}

// HandleToggle flips the completion flag and returns the updated task.
func (h *TaskHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.ToggleCompleted(r.Context(), httpx.UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTaskResponse(task))
}

// HandleDelete removes the task and echoes the deleted row.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.Delete(r.Context(), httpx.UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, deletedTaskResponse{Deleted: newTaskResponse(task)})
}
