package sqlite

import (
	"context"
	"database/sql"

	"github.com/tasktab/tasktab/internal/tasktab/domain"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, handle, secret_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Handle, u.SecretHash, u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `SELECT id, handle, secret_hash, created_at, updated_at FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByHandle(ctx context.Context, handle string) (domain.User, error) {
	return r.getUser(ctx, `SELECT id, handle, secret_hash, created_at, updated_at FROM users WHERE handle = ?`, handle)
}

func (r *usersRepo) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Handle, &u.SecretHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *usersRepo) UserStats(ctx context.Context, userID string) (domain.UserStats, error) {
	var stats domain.UserStats
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN completed = 1 THEN 1 END),
			COUNT(CASE WHEN completed = 0 THEN 1 END),
			AVG(priority)
		FROM tasks
		WHERE owner_id = ?`,
		userID,
	).Scan(&stats.TotalTasks, &stats.CompletedTasks, &stats.PendingTasks, &avg)
	if err != nil {
		return domain.UserStats{}, err
	}
	if avg.Valid {
		stats.AvgPriority = &avg.Float64
	}
	return stats, nil
}
