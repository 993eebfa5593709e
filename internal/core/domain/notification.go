package domain

import (
	"fmt"
	"time"
)

// NotificationType classifies what an alert is about.
type NotificationType string

const (
	NotificationMeeting NotificationType = "meeting"
	NotificationTask    NotificationType = "task"
	NotificationSystem  NotificationType = "system"
)

// ParseNotificationType validates a notification type.
func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(s); t {
	case NotificationMeeting, NotificationTask, NotificationSystem:
		return t, nil
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

// Notification is a transient in-session alert.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
	Link      string           `json:"link,omitempty"`
}

// NotificationInput is the caller-supplied part of a notification.
type NotificationInput struct {
	Type    NotificationType
	Title   string
	Message string
	Link    string
}
