package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/sunwatch/landing-api/internal/entity"
	"github.com/sunwatch/landing-api/internal/infra/http/middleware"
)

const signupTemplate = `A new lead joined the waitlist.

Name:       {{.Name}}
Email:      {{.Email}}
Dates away: {{if .DatesAway}}{{.DatesAway}}{{else}}-{{end}}
Message:    {{if .Message}}{{.Message}}{{else}}-{{end}}
Headline:   {{.Variant}}
Signed up:  {{.CreatedAt.Format "2006-01-02 15:04:05 MST"}}
`

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// SendSignupNotification emails the team about a new lead. Best effort: the
// caller logs failures and moves on.
func (s *EmailSender) SendSignupNotification(lead *entity.Lead) error {
	t, err := template.New("signup").Parse(signupTemplate)
	if err != nil {
		return fmt.Errorf("parse signup template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, lead); err != nil {
		return fmt.Errorf("render signup template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New waitlist signup: %s", lead.Name))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		middleware.RecordIntegrationError("smtp")
		return fmt.Errorf("send signup email: %w", err)
	}

	return nil
}
