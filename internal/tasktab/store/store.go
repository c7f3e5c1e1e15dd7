package store

import (
	"context"
	"errors"

	"github.com/tasktab/tasktab/internal/tasktab/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the handle is taken; the UNIQUE index
	// is the source of truth for concurrent registrations.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByHandle is used during login and the registration pre-check.
	GetUserByHandle(ctx context.Context, handle string) (domain.User, error)

	// CountUsers returns the total number of registered users.
	CountUsers(ctx context.Context) (int64, error)

	// UserStats aggregates the user's tasks for the profile view.
	UserStats(ctx context.Context, userID string) (domain.UserStats, error)
}

type Tasks interface {
	// CreateTask inserts a new task row.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTask fetches a single task scoped by owner. A task belonging to a
	// different owner is reported as ErrNotFound.
	GetTask(ctx context.Context, ownerID, id string) (domain.Task, error)

	// ListTasksByOwner returns the owner's tasks ordered by assigned date
	// descending, then priority descending.
	ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)

	// UpdateTask writes the full task row (the service applies merge
	// semantics before calling). ErrNotFound when no owned row matches.
	UpdateTask(ctx context.Context, t domain.Task) error

	// ToggleTaskCompleted flips completed and bumps updated_at, returning
	// the updated row.
	ToggleTaskCompleted(ctx context.Context, ownerID, id string) (domain.Task, error)

	// DeleteTask removes the row and returns it for confirmation.
	DeleteTask(ctx context.Context, ownerID, id string) (domain.Task, error)
}
