package domain

import "time"

// User is a registered identity. SecretHash is an argon2id PHC string and
// must never be serialized to clients or written to logs.
type User struct {
	ID         string
	Handle     string
	SecretHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserStats summarizes a user's tasks for the profile endpoint.
type UserStats struct {
	TotalTasks     int64
	CompletedTasks int64
	PendingTasks   int64
	AvgPriority    *float64 // nil when the user has no tasks
}
