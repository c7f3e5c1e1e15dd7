package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tasktab/tasktab/internal/tasktab/domain"
	"github.com/tasktab/tasktab/internal/tasktab/store"
)

func ptr[T any](v T) *T { return &v }

func seedUser(t *testing.T, st store.Store, handle string) domain.User {
	t.Helper()

	svc := newTestAuthService(t, st)
	user, _, err := svc.Register(context.Background(), handle, "secret")
	require.NoError(t, err)
	return user
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "ana")
	svc := &TaskService{Store: st}

	valid := CreateTaskParams{
		Title:        "Write report",
		Priority:     ptr(5),
		AssignedDate: "2024-01-10",
		AssignedTime: "09:00",
	}

	tests := []struct {
		name   string
		mutate func(*CreateTaskParams)
	}{
		{"missing title", func(p *CreateTaskParams) { p.Title = "" }},
		{"missing priority", func(p *CreateTaskParams) { p.Priority = nil }},
		{"priority below range", func(p *CreateTaskParams) { p.Priority = ptr(0) }},
		{"priority above range", func(p *CreateTaskParams) { p.Priority = ptr(11) }},
		{"missing assigned date", func(p *CreateTaskParams) { p.AssignedDate = "" }},
		{"missing assigned time", func(p *CreateTaskParams) { p.AssignedTime = "" }},
		{"bad assigned date", func(p *CreateTaskParams) { p.AssignedDate = "10/01/2024" }},
		{"bad assigned time", func(p *CreateTaskParams) { p.AssignedTime = "9am" }},
		{"bad due date", func(p *CreateTaskParams) { p.DueDate = ptr("soon") }},
		{"bad due time", func(p *CreateTaskParams) { p.DueTime = ptr("midnight") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)

			_, err := svc.Create(ctx, owner.ID, params)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
		})
	}

	// Nothing sneaks into the store when validation fails.
	tasks, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestCreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "ana")
	svc := &TaskService{Store: st}

	task, err := svc.Create(ctx, owner.ID, CreateTaskParams{
		Title:        "Write report",
		Priority:     ptr(5),
		AssignedDate: "2024-01-10",
		AssignedTime: "09:00",
	})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, owner.ID, task.OwnerID)
	require.False(t, task.Completed)
	require.Nil(t, task.Description)
	require.Nil(t, task.DueDate)

	done, err := svc.Create(ctx, owner.ID, CreateTaskParams{
		Title:        "Already done",
		Priority:     ptr(3),
		AssignedDate: "2024-01-10",
		AssignedTime: "10:30",
		Completed:    ptr(true),
	})
	require.NoError(t, err)
	require.True(t, done.Completed)

	// Round-trips through the store intact.
	got, err := svc.Get(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, task.Title, got.Title)
	require.Equal(t, task.AssignedDate, got.AssignedDate)
	require.Equal(t, task.AssignedTime, got.AssignedTime)
}

func TestUpdateTaskMergeSemantics(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "ana")
	svc := &TaskService{Store: st}

	task, err := svc.Create(ctx, owner.ID, CreateTaskParams{
		Title:        "Write report",
		Description:  ptr("quarterly numbers"),
		Priority:     ptr(5),
		AssignedDate: "2024-01-10",
		AssignedTime: "09:00",
		DueDate:      ptr("2024-01-12"),
		DueTime:      ptr("17:00"),
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.Update(ctx, owner.ID, task.ID, UpdateTaskParams{
		Title:    ptr("Write final report"),
		Priority: ptr(8),
	})
	require.NoError(t, err)
	require.Equal(t, "Write final report", updated.Title)
	require.Equal(t, 8, updated.Priority)

	// Untouched fields keep their stored values.
	require.Equal(t, task.Description, updated.Description)
	require.Equal(t, task.AssignedDate, updated.AssignedDate)
	require.Equal(t, task.AssignedTime, updated.AssignedTime)
	require.Equal(t, task.DueDate, updated.DueDate)
	require.Equal(t, task.DueTime, updated.DueTime)
	require.Equal(t, task.Completed, updated.Completed)
	require.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	t.Run("supplied fields are validated", func(t *testing.T) {
		_, err := svc.Update(ctx, owner.ID, task.ID, UpdateTaskParams{Priority: ptr(11)})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.Update(ctx, owner.ID, "01JUNKJUNKJUNKJUNKJUNKJUNK", UpdateTaskParams{Title: ptr("x")})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestToggleCompleted(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "ana")
	svc := &TaskService{Store: st}

	task, err := svc.Create(ctx, owner.ID, CreateTaskParams{
		Title:        "Write report",
		Priority:     ptr(5),
		AssignedDate: "2024-01-10",
		AssignedTime: "09:00",
	})
	require.NoError(t, err)

	toggled, err := svc.ToggleCompleted(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)

	again, err := svc.ToggleCompleted(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.False(t, again.Completed)

	_, err = svc.ToggleCompleted(ctx, owner.ID, "01JUNKJUNKJUNKJUNKJUNKJUNK")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListScopingAndOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ana := seedUser(t, st, "ana")
	bob := seedUser(t, st, "bob")
	svc := &TaskService{Store: st}

	mk := func(ownerID, title, date string, priority int) domain.Task {
		task, err := svc.Create(ctx, ownerID, CreateTaskParams{
			Title:        title,
			Priority:     ptr(priority),
			AssignedDate: date,
			AssignedTime: "09:00",
		})
		require.NoError(t, err)
		return task
	}

	mk(ana.ID, "older low", "2024-01-08", 2)
	mk(ana.ID, "newer", "2024-01-10", 1)
	mk(ana.ID, "older high", "2024-01-08", 9)
	mk(bob.ID, "bobs task", "2024-01-09", 5)

	tasks, err := svc.List(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Newest assignment date first, then priority descending within a date.
	require.Equal(t, "newer", tasks[0].Title)
	require.Equal(t, "older high", tasks[1].Title)
	require.Equal(t, "older low", tasks[2].Title)

	for _, task := range tasks {
		require.Equal(t, ana.ID, task.OwnerID)
	}
}

func TestCrossOwnerAccessLooksLikeMissing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ana := seedUser(t, st, "ana")
	bob := seedUser(t, st, "bob")
	svc := &TaskService{Store: st}

	task, err := svc.Create(ctx, ana.ID, CreateTaskParams{
		Title:        "private",
		Priority:     ptr(5),
		AssignedDate: "2024-01-10",
		AssignedTime: "09:00",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.ToggleCompleted(ctx, bob.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Delete(ctx, bob.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// The owner still sees it untouched.
	got, err := svc.Get(ctx, ana.ID, task.ID)
	require.NoError(t, err)
	require.False(t, got.Completed)
}

func TestDeleteReturnsRow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "ana")
	svc := &TaskService{Store: st}

	task, err := svc.Create(ctx, owner.ID, CreateTaskParams{
		Title:        "Write report",
		Priority:     ptr(5),
		AssignedDate: "2024-01-10",
		AssignedTime: "09:00",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, deleted.ID)
	require.Equal(t, task.Title, deleted.Title)

	_, err = svc.Get(ctx, owner.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Delete(ctx, owner.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
