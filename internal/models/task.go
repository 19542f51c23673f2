package models

import "time"

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// IsValidStatus reports whether s is one of the three workflow statuses.
func IsValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	CreatorID   string
	AssigneeID  *string
	Archived    bool
	CreatedAt   time.Time
}

// TaskWithNames is a task row enriched with the display names of the
// creator and, when set, the assignee. Returned by user-scoped listings.
type TaskWithNames struct {
	Task
	CreatorName  string
	AssigneeName *string
}
