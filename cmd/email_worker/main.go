package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/config"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/mailer"
	mailtpl "github.com/oksasatya/discount-catalog/pkg/mailer/templates"
)

// sender is the part of mailer.Mailgun the worker needs.
type sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

var errBadJob = errors.New("invalid email job")

// buildMessage decodes a queue body and renders it into a mail message.
func buildMessage(body []byte) (mailer.Message, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return mailer.Message{}, fmt.Errorf("decode job: %w", err)
	}
	if !job.Valid() {
		return mailer.Message{}, errBadJob
	}

	msg := mailer.Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return mailer.Message{}, fmt.Errorf("render %s: %w", job.Template, err)
		}
		msg.Subject, msg.Text, msg.HTML = s, t, h
	}
	if v, ok := job.Data["SenderEmail"].(string); ok {
		msg.ReplyTo = v
	}
	return msg, nil
}

// handle processes one delivery. Broken jobs are dropped, send failures requeued.
func handle(ctx context.Context, mg sender, logger logrus.FieldLogger, d amqp.Delivery) {
	msg, err := buildMessage(d.Body)
	if err != nil {
		helpers.LogError(logger, "drop email job", err, nil)
		_ = d.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mg.Send(c, msg); err != nil {
		helpers.LogError(logger, "send failed", err, logrus.Fields{"to": msg.To})
		_ = d.Nack(false, true)
		return
	}
	helpers.LogInfo(logger, "email sent", logrus.Fields{"to": msg.To, "subject": msg.Subject})
	_ = d.Ack(false)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	if !mg.Configured() {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for d := range msgs {
			handle(ctx, mg, logger, d)
		}
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-ctx.Done()
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
