package domain

import "time"

// File is the metadata of an attachment uploaded to the dashboard.
type File struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	MimeType   string    `json:"mime_type" bson:"mime_type"`
	SizeBytes  int64     `json:"size_bytes" bson:"size_bytes"`
	MeetingID  string    `json:"meeting_id,omitempty" bson:"meeting_id,omitempty"`
	UploadedBy int64     `json:"uploaded_by" bson:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
