package application

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/portfolio-backend/pkg/mailer/templates"
)

const maxMessageRunes = 5000

// JobPublisher queues a JSON payload for the email worker.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ContactInput struct {
	FullName  string
	Email     string
	Content   string
	Lang      string
	IP        string
	UserAgent string
}

type ContactService struct {
	Messages    repo.MessageRepository
	Publisher   JobPublisher
	Branding    mailtpl.Branding
	OwnerEmail  string
	SendReceipt bool
	Logger      *logrus.Logger
	now         func() time.Time
}

func NewContactService(messages repo.MessageRepository, publisher JobPublisher, branding mailtpl.Branding, ownerEmail string, sendReceipt bool, logger *logrus.Logger) *ContactService {
	return &ContactService{
		Messages:    messages,
		Publisher:   publisher,
		Branding:    branding,
		OwnerEmail:  ownerEmail,
		SendReceipt: sendReceipt,
		Logger:      logger,
		now:         time.Now,
	}
}

func (in ContactInput) normalized() (entity.ContactMessage, error) {
	msg := entity.ContactMessage{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Content:  strings.TrimSpace(in.Content),
	}
	if msg.FullName == "" || msg.Content == "" {
		return msg, fmt.Errorf("contact message: %w", ErrInvalidInput)
	}
	if utf8.RuneCountInString(msg.Content) > maxMessageRunes {
		return msg, fmt.Errorf("contact message too long: %w", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(msg.Email)
	if err != nil {
		return msg, fmt.Errorf("contact email: %w", ErrInvalidInput)
	}
	msg.Email = addr.Address
	return msg, nil
}

// Send stores the message and then queues the notification emails. Only the
// store write can fail the call.
func (s *ContactService) Send(ctx context.Context, in ContactInput) error {
	msg, err := in.normalized()
	if err != nil {
		return err
	}
	if err := s.Messages.Send(ctx, msg); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("store contact message failed")
		}
		return err
	}
	if s.Publisher == nil {
		return nil
	}

	opts := []mailtpl.Option{mailtpl.WithTime(s.now()), mailtpl.WithIP(in.IP), mailtpl.WithUserAgent(in.UserAgent), mailtpl.WithLang(in.Lang)}
	jobs := make([]mailer.EmailJob, 0, 2)
	if s.OwnerEmail != "" {
		jobs = append(jobs, mailer.EmailJob{
			To:       s.OwnerEmail,
			ReplyTo:  msg.Email,
			Template: mailtpl.ContactMessage,
			Data:     mailtpl.NewContactMessageData(s.Branding, s.OwnerEmail, msg.FullName, msg.Email, msg.Content, opts...),
		})
	}
	if s.SendReceipt {
		jobs = append(jobs, mailer.EmailJob{
			To:       msg.Email,
			ReplyTo:  s.OwnerEmail,
			Template: mailtpl.ContactReceipt,
			Data:     mailtpl.NewContactReceiptData(s.Branding, msg.FullName, msg.Email, msg.Content, opts...),
		})
	}
	for _, job := range jobs {
		if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("template", job.Template).Warn("publish email job failed")
		}
	}
	return nil
}
