package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tasktab/tasktab/internal/tasktab/domain"
	"github.com/tasktab/tasktab/internal/tasktab/store"
	"github.com/tasktab/tasktab/pkg/idx"
	"github.com/tasktab/tasktab/pkg/slogx"
)

const (
	maxTitleLength = 100
	minPriority    = 1
	maxPriority    = 10

	dateLayout = "2006-01-02"
)

// Accepted wall-clock layouts, with or without seconds.
var timeLayouts = []string{"15:04", "15:04:05"}

// TaskService implements the owner-scoped task lifecycle. Every operation
// takes the ownerID that the authentication middleware derived from the
// bearer token; a task owned by someone else behaves exactly like a task
// that does not exist.
type TaskService struct {
	Store store.Store
}

// CreateTaskParams are the client-supplied fields for a new task. Pointer
// fields are optional.
type CreateTaskParams struct {
	Title        string
	Description  *string
	Priority     *int
	AssignedDate string
	AssignedTime string
	DueDate      *string
	DueTime      *string
	Completed    *bool
}

// UpdateTaskParams are merge-semantics updates: nil fields keep their
// previous value, present fields are validated and replaced.
type UpdateTaskParams struct {
	Title        *string
	Description  *string
	Priority     *int
	AssignedDate *string
	AssignedTime *string
	DueDate      *string
	DueTime      *string
	Completed    *bool
}

// List returns the owner's tasks ordered by assignment date descending, then
// priority descending.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.Store.Tasks().ListTasksByOwner(ctx, ownerID)
}

// Get fetches a single owned task.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (domain.Task, error) {
	return s.Store.Tasks().GetTask(ctx, ownerID, id)
}

// Create validates the supplied fields and persists a new task for ownerID.
// Nothing is persisted when validation fails.
func (s *TaskService) Create(ctx context.Context, ownerID string, p CreateTaskParams) (domain.Task, error) {
	if err := validateTitle(p.Title); err != nil {
		return domain.Task{}, err
	}
	if p.AssignedDate == "" || p.AssignedTime == "" {
		return domain.Task{}, validationError("assigned_date and assigned_time are required")
	}
	if err := validateDate("assigned_date", p.AssignedDate); err != nil {
		return domain.Task{}, err
	}
	if err := validateTime("assigned_time", p.AssignedTime); err != nil {
		return domain.Task{}, err
	}
	if p.Priority == nil {
		return domain.Task{}, validationError("priority is required")
	}
	if err := validatePriority(*p.Priority); err != nil {
		return domain.Task{}, err
	}
	if p.DueDate != nil {
		if err := validateDate("due_date", *p.DueDate); err != nil {
			return domain.Task{}, err
		}
	}
	if p.DueTime != nil {
		if err := validateTime("due_time", *p.DueTime); err != nil {
			return domain.Task{}, err
		}
	}

	now := time.Now().UTC()
	task := domain.Task{
		ID:           idx.New().String(),
		OwnerID:      ownerID,
		Title:        p.Title,
		Description:  p.Description,
		Priority:     *p.Priority,
		AssignedDate: p.AssignedDate,
		AssignedTime: p.AssignedTime,
		DueDate:      p.DueDate,
		DueTime:      p.DueTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	slogx.FromContext(ctx).Info("task created", "task_id", task.ID, "owner_id", ownerID)
	return task, nil
}

// Update applies merge semantics: only the supplied fields change, the rest
// keep their stored values. Supplied fields are validated with the same
// rules as Create. updated_at is refreshed on success.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, p UpdateTaskParams) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTask(ctx, ownerID, id)
	if err != nil {
		return domain.Task{}, err
	}

	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return domain.Task{}, err
		}
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = p.Description
	}
	if p.Priority != nil {
		if err := validatePriority(*p.Priority); err != nil {
			return domain.Task{}, err
		}
		task.Priority = *p.Priority
	}
	if p.AssignedDate != nil {
		if err := validateDate("assigned_date", *p.AssignedDate); err != nil {
			return domain.Task{}, err
		}
		task.AssignedDate = *p.AssignedDate
	}
	if p.AssignedTime != nil {
		if err := validateTime("assigned_time", *p.AssignedTime); err != nil {
			return domain.Task{}, err
		}
		task.AssignedTime = *p.AssignedTime
	}
	if p.DueDate != nil {
		if err := validateDate("due_date", *p.DueDate); err != nil {
			return domain.Task{}, err
		}
		task.DueDate = p.DueDate
	}
	if p.DueTime != nil {
		if err := validateTime("due_time", *p.DueTime); err != nil {
			return domain.Task{}, err
		}
		task.DueTime = p.DueTime
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}

	task.UpdatedAt = time.Now().UTC()

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// ToggleCompleted flips the completion flag and returns the updated task.
func (s *TaskService) ToggleCompleted(ctx context.Context, ownerID, id string) (domain.Task, error) {
	return s.Store.Tasks().ToggleTaskCompleted(ctx, ownerID, id)
}

// Delete removes the task and returns the deleted record for confirmation.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) (domain.Task, error) {
	task, err := s.Store.Tasks().DeleteTask(ctx, ownerID, id)
	if err != nil {
		return domain.Task{}, err
	}
	slogx.FromContext(ctx).Info("task deleted", "task_id", id, "owner_id", ownerID)
	return task, nil
}

func validateTitle(title string) error {
	if title == "" {
		return validationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return validationError(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	return nil
}

func validatePriority(priority int) error {
	if priority < minPriority || priority > maxPriority {
		return validationError(fmt.Sprintf("priority must be between %d and %d", minPriority, maxPriority))
	}
	return nil
}

func validateDate(field, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return validationError(fmt.Sprintf("%s must be a date in the form %s", field, dateLayout))
	}
	return nil
}

func validateTime(field, value string) error {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return validationError(fmt.Sprintf("%s must be a time in the form HH:MM", field))
}
