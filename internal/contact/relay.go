package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Relay delivers a validated submission.
type Relay interface {
	Send(ctx context.Context, s Submission) error
}

// ErrNotConfigured is returned by relays missing credentials.
var ErrNotConfigured = errors.New("relay not configured")

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSRelay sends submissions through the EmailJS REST API.
type EmailJSRelay struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// Endpoint overrides the EmailJS API address.
	Endpoint string
	Client   *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (r *EmailJSRelay) Send(ctx context.Context, s Submission) error {
	if r.ServiceID == "" || r.TemplateID == "" || r.PublicKey == "" {
		return fmt.Errorf("emailjs: %w", ErrNotConfigured)
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:  r.ServiceID,
		TemplateID: r.TemplateID,
		UserID:     r.PublicKey,
		TemplateParams: map[string]string{
			"from_name":    s.Name,
			"from_email":   s.Email,
			"reply_to":     s.Email,
			"project_type": s.ProjectType,
			"message":      s.Message,
		},
	})
	if err != nil {
		return err
	}

	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = emailJSEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// SMTPRelay mails submissions to a fixed address.
type SMTPRelay struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (r *SMTPRelay) Send(_ context.Context, s Submission) error {
	if r.User == "" || r.Pass == "" || r.To == "" {
		return fmt.Errorf("smtp: %w", ErrNotConfigured)
	}

	send := r.sendMail
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", r.User, r.Pass, r.Host)
	if err := send(r.Host+":"+r.Port, auth, r.User, []string{r.To}, r.message(s)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (r *SMTPRelay) message(s Submission) []byte {
	body := fmt.Sprintf(`New contact form submission from the portfolio:

Name: %s
Email: %s
Project type: %s
Message:
%s

---
Sent from the portfolio contact form
`, s.Name, s.Email, s.ProjectType, s.Message)

	return []byte("To: " + r.To + "\r\n" +
		"Subject: Portfolio contact: " + headerValue(s.Name) + "\r\n" +
		"From: " + r.User + "\r\n" +
		"Reply-To: " + headerValue(s.Email) + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

var headerValue = strings.NewReplacer("\r", " ", "\n", " ").Replace

// LogRelay only logs submissions. It is meant for local development.
type LogRelay struct {
	Log *zap.Logger
}

func (r *LogRelay) Send(_ context.Context, s Submission) error {
	r.Log.Info("Contact submission (not delivered)",
		zap.String("name", s.Name),
		zap.String("email", s.Email),
		zap.String("project_type", s.ProjectType),
		zap.Int("message_length", len(s.Message)))
	return nil
}
