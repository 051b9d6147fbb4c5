package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProgressIssuesCookieOnFirstContact(t *testing.T) {
	m := NewManager()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	p := m.Progress(w, r)
	if p == nil {
		t.Fatal("expected a progress record")
	}
	if p.CurrentStage != 1 || p.ImagesGenerated != 0 {
		t.Fatalf("fresh session progress = %+v", p)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected a %s cookie, got %#v", CookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
	if m.Len() != 1 {
		t.Fatalf("sessions = %d, want 1", m.Len())
	}
}

func TestProgressReturnsSameRecordForCookie(t *testing.T) {
	m := NewManager()
	w := httptest.NewRecorder()
	first := m.Progress(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first.ImagesGenerated = 7
	cookie := w.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	second := m.Progress(httptest.NewRecorder(), r)
	if second != first {
		t.Fatal("same cookie should map to the same progress record")
	}
	if second.ImagesGenerated != 7 {
		t.Fatalf("progress not retained: %+v", second)
	}
}

func TestProgressReplacesUnknownCookie(t *testing.T) {
	m := NewManager()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-id"})
	w := httptest.NewRecorder()

	p := m.Progress(w, r)
	if p.ImagesGenerated != 0 {
		t.Fatalf("unknown cookie should start fresh, got %+v", p)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == "stale-id" {
		t.Fatalf("a fresh cookie should replace the stale one, got %#v", cookies)
	}
}
