package domain

import "time"

type Notification struct {
	ID        string
	ProjectID string
	TaskID    string
	Kind      NotificationKind
	Message   string
	Read      bool
	CreatedAt time.Time
}
