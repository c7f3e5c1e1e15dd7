package domain

import "time"

// Task is a unit of tracked work owned by exactly one user.
//
// AssignedDate/DueDate use the form "2006-01-02" and AssignedTime/DueTime
// "15:04"; the service layer validates them before anything is persisted.
type Task struct {
	ID           string
	OwnerID      string
	Title        string
	Description  *string
	Priority     int // 1..10
	AssignedDate string
	AssignedTime string
	DueDate      *string
	DueTime      *string
	Completed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
