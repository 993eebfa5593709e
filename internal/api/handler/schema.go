package handler

import (
	"time"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/guard"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Redirect string `json:"redirect"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type sessionResponse struct {
	User            *domain.User        `json:"user"`
	IsAuthenticated bool                `json:"is_authenticated"`
	IsLoading       bool                `json:"is_loading"`
	Permissions     []domain.Permission `json:"permissions"`
	Redirect        string              `json:"redirect,omitempty"`
}

type navigateResponse struct {
	guard.Decision
	Session sessionResponse `json:"session"`
}

// --- Settings ---

type settingsResponse struct {
	Settings     domain.Settings      `json:"settings"`
	Document     domain.Document      `json:"document"`
	ColorSchemes []domain.ColorScheme `json:"color_schemes"`
}

type updateSettingsRequest struct {
	Theme       *string `json:"theme"        validate:"omitempty,oneof=light dark system"`
	ColorScheme *string `json:"color_scheme" validate:"omitempty,oneof=blue green purple orange red"`
	Language    *string `json:"language"     validate:"omitempty,oneof=fa en ar"`
}

// --- Notifications ---

type notificationListResponse struct {
	Items       []domain.Notification `json:"items"`
	UnreadCount int                   `json:"unread_count"`
}

type sendNotificationRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Type    string `json:"type"    validate:"required"`
	Title   string `json:"title"   validate:"required"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// --- Meetings ---

type createMeetingRequest struct {
	Title          string    `json:"title"           validate:"required,max=200"`
	Description    string    `json:"description"     validate:"max=4000"`
	Location       string    `json:"location"`
	Start          time.Time `json:"start"           validate:"required"`
	End            time.Time `json:"end"             validate:"required,gtfield=Start"`
	ParticipantIDs []int64   `json:"participant_ids" validate:"dive,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}

type addResolutionRequest struct {
	Text       string    `json:"text"        validate:"required"`
	AssigneeID int64     `json:"assignee_id" validate:"required,gt=0"`
	DueDate    time.Time `json:"due_date"    validate:"required"`
}

type resolutionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open done"`
}

type attendanceRequest struct {
	Attendance string `json:"attendance" validate:"required,oneof=pending accepted declined attended"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func newListResponse[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: len(items)}
}

// --- Pages ---

// pageResponse is the view model of every rendered page.
type pageResponse struct {
	Page     string          `json:"page"`
	Path     string          `json:"path"`
	User     *domain.User    `json:"user,omitempty"`
	Document domain.Document `json:"document"`
	Data     any             `json:"data,omitempty"`
}
