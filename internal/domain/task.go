package domain

import "time"

type Task struct {
	ID          string
	Title       string
	Description string
	Assignee    string // assignee display name
	WorkerID    string
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a copy of the task with no shared pointers.
func (t Task) Clone() Task {
	cp := t
	if t.DueDate != nil {
		d := *t.DueDate
		cp.DueDate = &d
	}
	return cp
}

// Overdue reports whether the task has a due date in the past and is not done.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskDone
}
