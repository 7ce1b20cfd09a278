package helpers

import (
	"fmt"

	"github.com/oksasatya/portfolio-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/portfolio-backend/pkg/mailer/templates"
)

// SubjectFallback is used when a templated job renders an empty subject.
func SubjectFallback(template string) string {
	switch template {
	case mailtpl.ContactMessage:
		return "New contact message"
	case mailtpl.ContactReceipt:
		return "Gracias por tu mensaje"
	default:
		return "Notification"
	}
}

// EnsureRecipient mirrors the job recipient into the template data.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// RenderJob fills Subject, Text and HTML from the job's template, if any.
func RenderJob(job *mailer.EmailJob) error {
	if job.Template == "" {
		return nil
	}
	if !mailtpl.Known(job.Template) {
		return fmt.Errorf("%w: unknown template %q", mailer.ErrInvalidJob, job.Template)
	}
	EnsureRecipient(job)
	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return err
	}
	if subject == "" {
		subject = SubjectFallback(job.Template)
	}
	job.Subject, job.Text, job.HTML = subject, text, html
	return nil
}
