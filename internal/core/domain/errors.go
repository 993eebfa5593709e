package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrMissingPermission  = errors.New("missing permission")
	ErrInvalidPermission  = errors.New("invalid permission")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrInvalidSetting = errors.New("invalid setting")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrResolutionNotFound  = errors.New("resolution not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidMeeting      = errors.New("invalid meeting")

	ErrFileNotFound = errors.New("file not found")

	// ErrStorageUnavailable is returned by client storage backends that cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
