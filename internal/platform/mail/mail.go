// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

// Package mail provides outbound transactional email for the Devfolio API.
//
// # Architecture
//
// Services depend on the [Mailer] interface, never on SMTP directly, so tests
// can capture outbound mail in memory. The production implementation speaks
// plain SMTP with STARTTLS negotiation left to the server.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Message is one outbound plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// SMTPMailer is the production [Mailer] backed by net/smtp.
type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	hasCreds bool
}

// NewSMTPMailer builds an SMTP mailer. Credentials are optional for local
// relays like MailHog; auth is only attempted when a username is configured.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	mailer := &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
	if username != "" {
		mailer.auth = smtp.PlainAuth("", username, password, host)
		mailer.hasCreds = true
	}
	return mailer
}

// Send delivers one message. The context is honored only up to the SMTP
// dial; net/smtp does not support mid-transaction cancellation.
func (mailer *SMTPMailer) Send(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload := strings.Join([]string{
		"From: " + mailer.from,
		"To: " + message.To,
		"Subject: " + message.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		message.Body,
	}, "\r\n")

	var auth smtp.Auth
	if mailer.hasCreds {
		auth = mailer.auth
	}
	if err := smtp.SendMail(mailer.addr, auth, mailer.from, []string{message.To}, []byte(payload)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", message.To, err)
	}
	return nil
}

// LogMailer is the [Mailer] used when no SMTP host is configured. It logs the
// would-be delivery and drops the message, so mail-triggering flows keep
// working in environments without an outbound relay.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer builds a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message headers and reports success.
func (mailer *LogMailer) Send(_ context.Context, message Message) error {
	mailer.logger.Info("mail_delivery_skipped",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	return nil
}

// SendAsync delivers a message on a background goroutine, logging failures
// instead of surfacing them. Used for best-effort notifications where the
// triggering request must not fail on mail trouble.
func SendAsync(logger *slog.Logger, mailer Mailer, message Message) {
	go func() {
		if err := mailer.Send(context.Background(), message); err != nil {
			logger.Error("mail_send_failed",
				slog.String("to", message.To),
				slog.String("subject", message.Subject),
				slog.String("error", err.Error()),
			)
		}
	}()
}
