package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	mail "gopkg.in/mail.v2"
)

type SMTPClient struct {
	dialer    *mail.Dialer
	fromEmail string
}

func NewSMTPClient(host string, port int, username, password, fromEmail string) (*SMTPClient, error) {
	if host == "" || fromEmail == "" {
		return nil, errors.New("smtp host and from email are required")
	}
	return &SMTPClient{
		dialer:    mail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
	}, nil
}

// Send renders the named template ("subject" and "body" blocks) and delivers
// the mail, retrying transient SMTP failures with a linear backoff.
func (c *SMTPClient) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, fmt.Errorf("parse template: %w", err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, fmt.Errorf("render subject: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, fmt.Errorf("render body: %w", err)
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", c.fromEmail, FromName)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", body.String())

	var sendErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if sendErr = c.dialer.DialAndSend(msg); sendErr == nil {
			return http.StatusOK, nil
		}
		time.Sleep(time.Second * time.Duration(attempt))
	}

	return -1, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, sendErr)
}
