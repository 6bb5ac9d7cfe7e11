package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func valid() Submission {
	return Submission{
		Name:        "Jane Doe",
		Email:       "jane@tech.com",
		ProjectType: "Aplicación Web",
		Message:     "Necesito una API para mi tienda.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Submission)
		field  string
		key    string
	}{
		{"valid", func(*Submission) {}, "", ""},
		{"missing name", func(s *Submission) { s.Name = "" }, "name", KeyRequired},
		{"single word name", func(s *Submission) { s.Name = "Jane" }, "name", KeyFullName},
		{"short name", func(s *Submission) { s.Name = "J" }, "name", KeyTooShort},
		{"long name", func(s *Submission) { s.Name = "Jane " + strings.Repeat("x", 80) }, "name", KeyTooLong},
		{"bad email", func(s *Submission) { s.Email = "jane.tech.com" }, "email", KeyEmail},
		{"long email", func(s *Submission) { s.Email = strings.Repeat("a", 120) + "@x.com" }, "email", KeyTooLong},
		{"missing project type", func(s *Submission) { s.ProjectType = "" }, "projectType", KeyRequired},
		{"short message", func(s *Submission) { s.Message = "Hola" }, "message", KeyTooShort},
		{"long message", func(s *Submission) { s.Message = strings.Repeat("a", 2001) }, "message", KeyTooLong},
		{"accented name counts runes", func(s *Submission) { s.Name = "Íñigo Ñúñez" }, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(&s)
			err := Validate(s)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if got := verrs.Key(tt.field); got != tt.key {
				t.Errorf("key for %s = %q, want %q (%v)", tt.field, got, tt.key, verrs)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	err := Validate(Submission{})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(verrs), verrs)
	}
}

type stubRelay struct {
	got []Submission
	err error
}

func (r *stubRelay) Send(_ context.Context, s Submission) error {
	r.got = append(r.got, s)
	return r.err
}

type stubRecorder struct {
	ids  []string
	sent []bool
}

func (r *stubRecorder) RecordContact(_ context.Context, id string, sent bool, _ time.Time) error {
	r.ids = append(r.ids, id)
	r.sent = append(r.sent, sent)
	return nil
}

func TestSubmit(t *testing.T) {
	relay := &stubRelay{}
	rec := &stubRecorder{}
	svc := NewService(relay, rec, zaptest.NewLogger(t))

	s := valid()
	s.Name = "  Jane Doe  "
	res, err := svc.Submit(context.Background(), s)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(res.ID) != 36 {
		t.Errorf("id = %q", res.ID)
	}
	if len(relay.got) != 1 || relay.got[0].Name != "Jane Doe" {
		t.Errorf("relay got %+v", relay.got)
	}
	if len(rec.ids) != 1 || rec.ids[0] != res.ID || !rec.sent[0] {
		t.Errorf("recorder got %v %v", rec.ids, rec.sent)
	}
}

func TestSubmitInvalidNeverRelays(t *testing.T) {
	relay := &stubRelay{}
	rec := &stubRecorder{}
	svc := NewService(relay, rec, zaptest.NewLogger(t))

	s := valid()
	s.Email = "nope"
	_, err := svc.Submit(context.Background(), s)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(relay.got) != 0 || len(rec.ids) != 0 {
		t.Error("invalid submission reached the relay")
	}
}

func TestSubmitRelayFailure(t *testing.T) {
	relay := &stubRelay{err: errors.New("boom")}
	rec := &stubRecorder{}
	svc := NewService(relay, rec, zaptest.NewLogger(t))

	res, err := svc.Submit(context.Background(), valid())
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed, got %v", err)
	}
	if res.ID == "" || len(rec.sent) != 1 || rec.sent[0] {
		t.Errorf("failure not recorded: %+v %v", res, rec.sent)
	}
}

func TestEmailJSRelay(t *testing.T) {
	var payload emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	relay := &EmailJSRelay{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", Endpoint: srv.URL}
	if err := relay.Send(context.Background(), valid()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if payload.ServiceID != "svc" || payload.TemplateID != "tpl" || payload.UserID != "pub" {
		t.Errorf("ids = %+v", payload)
	}
	if payload.TemplateParams["from_name"] != "Jane Doe" || payload.TemplateParams["project_type"] != "Aplicación Web" {
		t.Errorf("params = %v", payload.TemplateParams)
	}
}

func TestEmailJSRelayFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	relay := &EmailJSRelay{ServiceID: "svc", TemplateID: "tpl", PublicKey: "bad", Endpoint: srv.URL}
	err := relay.Send(context.Background(), valid())
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Errorf("expected status error, got %v", err)
	}

	if err := (&EmailJSRelay{}).Send(context.Background(), valid()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSMTPRelay(t *testing.T) {
	var addr string
	var msg []byte
	relay := &SMTPRelay{
		Host: "smtp.example.com", Port: "587",
		User: "me@example.com", Pass: "secret", To: "inbox@example.com",
		sendMail: func(a string, _ smtp.Auth, from string, to []string, m []byte) error {
			addr, msg = a, m
			return nil
		},
	}

	s := valid()
	s.Name = "Jane\r\nBcc: evil@example.com"
	if err := relay.Send(context.Background(), s); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", addr)
	}
	headers, _, _ := strings.Cut(string(msg), "\r\n\r\n")
	if strings.Contains(headers, "\r\nBcc:") {
		t.Errorf("header injection not neutralised:\n%s", msg)
	}
	if !strings.Contains(string(msg), "Reply-To: jane@tech.com") {
		t.Errorf("missing reply-to:\n%s", msg)
	}

	if err := (&SMTPRelay{}).Send(context.Background(), valid()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLogRelay(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	relay := &LogRelay{Log: zap.New(core)}
	if err := relay.Send(context.Background(), valid()); err != nil {
		t.Fatal(err)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["email"] != "jane@tech.com" {
		t.Errorf("fields = %v", fields)
	}
	if _, ok := fields["message"]; ok {
		t.Error("message body must not be logged")
	}
}
