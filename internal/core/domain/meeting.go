package domain

import "time"

// MeetingStatus represents the lifecycle state of a meeting.
type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingInProgress MeetingStatus = "in_progress"
	MeetingCompleted  MeetingStatus = "completed"
	MeetingCancelled  MeetingStatus = "cancelled"
)

// validTransitions defines the allowed meeting lifecycle transitions.
var validTransitions = map[MeetingStatus][]MeetingStatus{
	MeetingScheduled:  {MeetingInProgress, MeetingCancelled},
	MeetingInProgress: {MeetingCompleted, MeetingCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Attendance is a participant's response to an invitation.
type Attendance string

const (
	AttendancePending  Attendance = "pending"
	AttendanceAccepted Attendance = "accepted"
	AttendanceDeclined Attendance = "declined"
	AttendanceAttended Attendance = "attended"
)

// Participant is a user invited to a meeting.
type Participant struct {
	UserID     int64      `json:"user_id" bson:"user_id"`
	Name       string     `json:"name" bson:"name"`
	Attendance Attendance `json:"attendance" bson:"attendance"`
}

// ResolutionStatus tracks completion of an action item.
type ResolutionStatus string

const (
	ResolutionOpen ResolutionStatus = "open"
	ResolutionDone ResolutionStatus = "done"
)

// Resolution is an action item decided in a meeting.
type Resolution struct {
	ID         string           `json:"id" bson:"id"`
	Text       string           `json:"text" bson:"text"`
	AssigneeID int64            `json:"assignee_id" bson:"assignee_id"`
	DueDate    time.Time        `json:"due_date" bson:"due_date"`
	Status     ResolutionStatus `json:"status" bson:"status"`
}

// Meeting is the core aggregate of the dashboard.
type Meeting struct {
	ID            string        `json:"id" bson:"_id"`
	Title         string        `json:"title" bson:"title"`
	Description   string        `json:"description" bson:"description"`
	Location      string        `json:"location" bson:"location"`
	Start         time.Time     `json:"start" bson:"start"`
	End           time.Time     `json:"end" bson:"end"`
	Status        MeetingStatus `json:"status" bson:"status"`
	OrganizerID   int64         `json:"organizer_id" bson:"organizer_id"`
	Participants  []Participant `json:"participants" bson:"participants"`
	Resolutions   []Resolution  `json:"resolutions" bson:"resolutions"`
	AttachmentIDs []string      `json:"attachment_ids" bson:"attachment_ids"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

// HasParticipant reports whether userID is invited.
func (m *Meeting) HasParticipant(userID int64) bool {
	for _, p := range m.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the meeting.
func (m *Meeting) Clone() *Meeting {
	if m == nil {
		return nil
	}
	c := *m
	c.Participants = append([]Participant(nil), m.Participants...)
	c.Resolutions = append([]Resolution(nil), m.Resolutions...)
	c.AttachmentIDs = append([]string(nil), m.AttachmentIDs...)
	return &c
}
