package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/config"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	"github.com/oksasatya/portfolio-backend/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			switch err := handle(ctx, mg, msg.Body); {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, mailer.ErrInvalidJob):
				helpers.LogError(logger, "dropping email job", err, nil)
				_ = msg.Nack(false, false)
			default:
				helpers.LogError(logger, "email send failed; requeueing", err, nil)
				_ = msg.Nack(false, !msg.Redelivered)
			}
		}
	}()

	helpers.LogInfo(logger, "email worker listening", logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

type sender interface {
	Send(ctx context.Context, to, replyTo, subject, text, html string) error
}

// handle renders and sends one queued job. Malformed or unrenderable jobs
// wrap mailer.ErrInvalidJob so they are dropped instead of requeued.
func handle(ctx context.Context, s sender, body []byte) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return errors.Join(mailer.ErrInvalidJob, err)
	}
	if err := job.Validate(); err != nil {
		return err
	}
	if err := helpers.RenderJob(&job); err != nil {
		if errors.Is(err, mailer.ErrInvalidJob) {
			return err
		}
		return errors.Join(mailer.ErrInvalidJob, err)
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return s.Send(c, job.To, job.ReplyTo, job.Subject, job.Text, job.HTML)
}
