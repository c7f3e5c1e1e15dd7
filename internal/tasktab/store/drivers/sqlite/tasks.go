package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tasktab/tasktab/internal/tasktab/domain"
	"github.com/tasktab/tasktab/internal/tasktab/store"
)

const taskColumns = `id, owner_id, title, description, priority,
	assigned_date, assigned_time, due_date, due_time, completed,
	created_at, updated_at`

type tasksRepo struct {
	db *sql.DB
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Title, mapOptionalString(t.Description), t.Priority,
		t.AssignedDate, t.AssignedTime, mapOptionalString(t.DueDate),
		mapOptionalString(t.DueTime), t.Completed, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *tasksRepo) GetTask(ctx context.Context, ownerID, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	return scanTask(row)
}

func (r *tasksRepo) ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = ?
		ORDER BY assigned_date DESC, priority DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, priority = ?,
		    assigned_date = ?, assigned_time = ?, due_date = ?, due_time = ?,
		    completed = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`,
		t.Title, mapOptionalString(t.Description), t.Priority,
		t.AssignedDate, t.AssignedTime, mapOptionalString(t.DueDate),
		mapOptionalString(t.DueTime), t.Completed, t.UpdatedAt,
		t.OwnerID, t.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) ToggleTaskCompleted(ctx context.Context, ownerID, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET completed = NOT completed, updated_at = ?
		WHERE owner_id = ? AND id = ?
		RETURNING `+taskColumns,
		time.Now().UTC(), ownerID, id,
	)
	return scanTask(row)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, ownerID, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM tasks
		WHERE owner_id = ? AND id = ?
		RETURNING `+taskColumns,
		ownerID, id,
	)
	return scanTask(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	var description, dueDate, dueTime sql.NullString
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &description, &t.Priority,
		&t.AssignedDate, &t.AssignedTime, &dueDate, &dueTime, &t.Completed,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	t.Description = mapNullStringPtr(description)
	t.DueDate = mapNullStringPtr(dueDate)
	t.DueTime = mapNullStringPtr(dueTime)
	return t, nil
}
