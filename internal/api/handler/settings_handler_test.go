package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

func TestSettingsHandler_Get_Defaults(t *testing.T) {
	f := newFixture(t)
	e := newTestEcho()
	inst := f.instance(t, false)

	c, rec := newContext(e, http.MethodGet, "/settings", nil)
	withInstance(c, inst)
	if err := NewSettingsHandler().Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp settingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Settings != domain.DefaultSettings() {
		t.Fatalf("unexpected settings: %+v", resp.Settings)
	}
	if resp.Document.Dir != domain.DirRTL || len(resp.ColorSchemes) != 5 {
		t.Fatalf("unexpected document: %+v", resp)
	}
}

func TestSettingsHandler_Update_Partial(t *testing.T) {
	f := newFixture(t)
	e := newTestEcho()
	inst := f.instance(t, false)

	c, rec := newContext(e, http.MethodPut, "/settings", strings.NewReader(`{"language":"en","color_scheme":"purple"}`))
	withInstance(c, inst)
	if err := NewSettingsHandler().Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp settingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Settings.Theme != domain.ThemeSystem {
		t.Fatalf("theme changed: %s", resp.Settings.Theme)
	}
	if resp.Settings.Language != domain.LangEnglish || resp.Settings.Direction != domain.DirLTR {
		t.Fatalf("language not applied: %+v", resp.Settings)
	}
	if resp.Document.Dir != domain.DirLTR || resp.Document.Classes[1] != "scheme-purple" {
		t.Fatalf("document not applied: %+v", resp.Document)
	}
}

func TestSettingsHandler_Update_Invalid(t *testing.T) {
	f := newFixture(t)
	e := newTestEcho()
	inst := f.instance(t, false)

	for _, body := range []string{`{"theme":"sepia"}`, `{"language":"de"}`, `{"color_scheme":"teal"}`} {
		c, _ := newContext(e, http.MethodPut, "/settings", strings.NewReader(body))
		withInstance(c, inst)
		if got := httpStatus(t, NewSettingsHandler().Update(c)); got != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", body, got)
		}
	}
	if inst.Settings.Settings() != domain.DefaultSettings() {
		t.Fatal("invalid update changed the settings")
	}
}
