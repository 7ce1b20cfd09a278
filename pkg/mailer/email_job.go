package mailer

import (
	"errors"
	"strings"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or Subject plus Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	ReplyTo  string         `json:"reply_to,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "contact_message" or "contact_receipt"
	Data     map[string]any `json:"data,omitempty"`
}

var ErrInvalidJob = errors.New("invalid email job")

func (j EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" {
		return errors.Join(ErrInvalidJob, errors.New("missing recipient"))
	}
	if j.Template == "" && j.Subject == "" {
		return errors.Join(ErrInvalidJob, errors.New("missing template or subject"))
	}
	return nil
}
