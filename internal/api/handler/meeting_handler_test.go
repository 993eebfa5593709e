package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type stubMeetingService struct {
	listFn   func(ctx context.Context, filter ports.ListMeetingsFilter) ([]*domain.Meeting, error)
	createFn func(ctx context.Context, input ports.CreateMeetingInput) (*domain.Meeting, error)
	statusFn func(ctx context.Context, id string, status domain.MeetingStatus) (*domain.Meeting, error)
	attendFn func(ctx context.Context, id string, userID int64, a domain.Attendance) (*domain.Meeting, error)
}

func (s *stubMeetingService) List(ctx context.Context, filter ports.ListMeetingsFilter) ([]*domain.Meeting, error) {
	return s.listFn(ctx, filter)
}

func (s *stubMeetingService) Get(_ context.Context, id string) (*domain.Meeting, error) {
	return nil, domain.ErrMeetingNotFound
}

func (s *stubMeetingService) Create(ctx context.Context, input ports.CreateMeetingInput) (*domain.Meeting, error) {
	return s.createFn(ctx, input)
}

func (s *stubMeetingService) UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) (*domain.Meeting, error) {
	return s.statusFn(ctx, id, status)
}

func (s *stubMeetingService) AddResolution(context.Context, ports.AddResolutionInput) (*domain.Meeting, error) {
	return nil, domain.ErrMeetingNotFound
}

func (s *stubMeetingService) SetResolutionStatus(context.Context, string, string, domain.ResolutionStatus) (*domain.Meeting, error) {
	return nil, domain.ErrResolutionNotFound
}

func (s *stubMeetingService) SetAttendance(ctx context.Context, id string, userID int64, a domain.Attendance) (*domain.Meeting, error) {
	return s.attendFn(ctx, id, userID, a)
}

func TestMeetingHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubMeetingService{
		createFn: func(ctx context.Context, in ports.CreateMeetingInput) (*domain.Meeting, error) {
			if in.OrganizerID != 5 || in.Title != "Retro" || len(in.ParticipantIDs) != 2 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Meeting{ID: "m-new", Title: in.Title, Status: domain.MeetingScheduled, OrganizerID: in.OrganizerID}, nil
		},
	}
	handler := NewMeetingHandler(stub)

	body := `{"title":"Retro","start":"2026-04-01T09:00:00Z","end":"2026-04-01T10:00:00Z","participant_ids":[2,3]}`
	c, rec := newContext(e, http.MethodPost, "/api/v1/meetings", strings.NewReader(body))
	withClaims(c, 5, domain.PermManageMeetings)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/meetings/m-new" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestMeetingHandler_Create_Rejects(t *testing.T) {
	e := newTestEcho()
	handler := NewMeetingHandler(&stubMeetingService{
		createFn: func(context.Context, ports.CreateMeetingInput) (*domain.Meeting, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	})

	c, _ := newContext(e, http.MethodPost, "/api/v1/meetings", strings.NewReader(`{"title":"x"}`))
	if got := httpStatus(t, handler.Create(c)); got != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", got)
	}

	tests := map[string]string{
		"missing title":   `{"start":"2026-04-01T09:00:00Z","end":"2026-04-01T10:00:00Z"}`,
		"end before":      `{"title":"x","start":"2026-04-01T09:00:00Z","end":"2026-04-01T08:00:00Z"}`,
		"bad participant": `{"title":"x","start":"2026-04-01T09:00:00Z","end":"2026-04-01T10:00:00Z","participant_ids":[0]}`,
	}
	for name, body := range tests {
		c, _ := newContext(e, http.MethodPost, "/api/v1/meetings", strings.NewReader(body))
		withClaims(c, 1, domain.PermManageMeetings)
		if got := httpStatus(t, handler.Create(c)); got != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", name, got)
		}
	}

	c, _ = newContext(e, http.MethodPost, "/api/v1/meetings", strings.NewReader(`{not json`))
	withClaims(c, 1)
	if got := httpStatus(t, handler.Create(c)); got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
}

func TestMeetingHandler_List_ParsesFilter(t *testing.T) {
	e := newTestEcho()
	var got ports.ListMeetingsFilter
	handler := NewMeetingHandler(&stubMeetingService{
		listFn: func(_ context.Context, f ports.ListMeetingsFilter) ([]*domain.Meeting, error) {
			got = f
			return nil, nil
		},
	})

	c, rec := newContext(e, http.MethodGet, "/api/v1/meetings?status=scheduled&participant_id=3&search=ops&from=2026-03-01&to=2026-03-31T23:59:59Z", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Status != domain.MeetingScheduled || got.ParticipantID != 3 || got.Search != "ops" {
		t.Fatalf("unexpected filter: %+v", got)
	}
	if !got.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) || got.To.Day() != 31 {
		t.Fatalf("unexpected range: %v - %v", got.From, got.To)
	}

	var resp struct {
		Items []any `json:"items"`
		Total int   `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Items == nil || resp.Total != 0 {
		t.Fatalf("expected an empty list, got %s", rec.Body.String())
	}

	for _, q := range []string{"status=archived", "participant_id=x", "from=yesterday"} {
		c, _ := newContext(e, http.MethodGet, "/api/v1/meetings?"+q, nil)
		if code := httpStatus(t, handler.List(c)); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, code)
		}
	}
}

func TestMeetingHandler_UpdateStatus(t *testing.T) {
	e := newTestEcho()
	handler := NewMeetingHandler(&stubMeetingService{
		statusFn: func(_ context.Context, id string, st domain.MeetingStatus) (*domain.Meeting, error) {
			if st == domain.MeetingCompleted {
				return nil, domain.ErrInvalidTransition
			}
			return &domain.Meeting{ID: id, Status: st}, nil
		},
	})

	c, rec := newContext(e, http.MethodPatch, "/api/v1/meetings/m-0003/status", strings.NewReader(`{"status":"in_progress"}`))
	c.SetParamNames("id")
	c.SetParamValues("m-0003")
	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(e, http.MethodPatch, "/api/v1/meetings/m-0003/status", strings.NewReader(`{"status":"completed"}`))
	c.SetParamNames("id")
	c.SetParamValues("m-0003")
	if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	c, _ = newContext(e, http.MethodPatch, "/api/v1/meetings/m-0003/status", strings.NewReader(`{"status":"paused"}`))
	if got := httpStatus(t, handler.UpdateStatus(c)); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", got)
	}
}

func TestMeetingHandler_SetAttendance(t *testing.T) {
	e := newTestEcho()
	handler := NewMeetingHandler(&stubMeetingService{
		attendFn: func(_ context.Context, id string, uid int64, a domain.Attendance) (*domain.Meeting, error) {
			return &domain.Meeting{ID: id, Participants: []domain.Participant{{UserID: uid, Attendance: a}}}, nil
		},
	})

	c, rec := newContext(e, http.MethodPut, "/api/v1/meetings/m-0003/participants/4", strings.NewReader(`{"attendance":"accepted"}`))
	c.SetParamNames("id", "uid")
	c.SetParamValues("m-0003", "4")
	if err := handler.SetAttendance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(e, http.MethodPut, "/api/v1/meetings/m-0003/participants/abc", strings.NewReader(`{"attendance":"accepted"}`))
	c.SetParamNames("id", "uid")
	c.SetParamValues("m-0003", "abc")
	if got := httpStatus(t, handler.SetAttendance(c)); got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
}
