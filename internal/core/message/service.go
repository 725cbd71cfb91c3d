package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/mail"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/platform/validate"
	"github.com/mquinde/devfolio/pkg/pagination"
	"github.com/mquinde/devfolio/pkg/uuidv7"
)

// ContactInput is the public contact-form payload.
type ContactInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Subject  string  `json:"subject"`
	Body     string  `json:"message"`
	Category string  `json:"category"`
}

type Service struct {
	repo       Repository
	lister     *listing.Lister[Message]
	mailer     mail.Mailer
	adminEmail string
	logger     *slog.Logger
}

func NewService(repo Repository, mailer mail.Mailer, adminEmail string, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		lister:     listing.NewLister[Message](ListConfig(), repo),
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// SubmitMessage handles a public contact-form submission. The confirmation
// and admin-notification emails are best-effort; the submission succeeds even
// when the mail relay is down.
func (service *Service) SubmitMessage(context context.Context, input ContactInput, ipAddress, userAgent string) (*Message, error) {
	if input.Category == "" {
		input.Category = DefaultCategory
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldSubject, input.Subject).MaxLen(FieldSubject, input.Subject, 100)
	validator.Required(FieldBody, input.Body).MaxLen(FieldBody, input.Body, 2000)
	validator.OneOf(FieldCategory, input.Category, Categories...)
	if input.Phone != nil {
		validator.MaxLen(FieldPhone, *input.Phone, 20)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Message{
		ID:        uuidv7.New(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Body:      input.Body,
		Category:  input.Category,
		Status:    StatusNew,
		Priority:  DefaultPriority,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := service.repo.CreateMessage(context, created); err != nil {
		return nil, err
	}

	service.logger.Info("contact_message_received",
		slog.String("message_id", created.ID),
		slog.String("category", created.Category),
	)

	mail.SendAsync(service.logger, service.mailer, mail.Message{
		To:      created.Email,
		Subject: "Message received - we'll get back to you soon",
		Body: fmt.Sprintf("Hi %s,\n\nThank you for reaching out! We have received your message and will get back to you as soon as possible.\n\nYour message:\n%s\n\nBest regards,\nDevfolio",
			created.Name, created.Body),
	})
	mail.SendAsync(service.logger, service.mailer, mail.Message{
		To:      service.adminEmail,
		Subject: "New contact message: " + created.Subject,
		Body: fmt.Sprintf("New message from %s (%s):\n\n%s\n\nCategory: %s",
			created.Name, created.Email, created.Body, created.Category),
	})

	return created, nil
}

// ListMessages returns one inbox page. Spam never appears here regardless of
// the caller's filters.
func (service *Service) ListMessages(context context.Context, role sec.UserRole, request listing.Request) (*listing.Result[Message], error) {
	return service.lister.List(context, role, request)
}

// ListSpam returns the spam quarantine page.
func (service *Service) ListSpam(context context.Context, params pagination.Params) (*listing.Result[Message], error) {
	messages, total, err := service.repo.ListSpam(context, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	meta, err := pagination.Paginate(params.Page, params.Limit, total)
	if err != nil {
		return nil, apperr.InvalidPagination()
	}
	if messages == nil {
		messages = []Message{}
	}
	return &listing.Result[Message]{Items: messages, Meta: meta}, nil
}

// GetMessage fetches one message and transitions it from new to read.
func (service *Service) GetMessage(context context.Context, id string) (*Message, error) {
	found, err := service.repo.GetMessage(context, id)
	if err != nil {
		return nil, err
	}

	if found.Status == StatusNew {
		updated, err := service.repo.UpdateStatus(context, id, StatusRead)
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return found, nil
}

// UpdateStatus moves a message through the inbox workflow.
func (service *Service) UpdateStatus(context context.Context, id, status string) (*Message, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, status, Statuses...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.UpdateStatus(context, id, status)
}

// ReplyToMessage emails a reply to the sender and records it. Unlike the
// submission notifications, reply delivery failures surface to the caller:
// the admin needs to know the sender never got the answer.
func (service *Service) ReplyToMessage(context context.Context, id, replyMessage string) (*Message, error) {
	if replyMessage == "" {
		return nil, validate.RequiredError(FieldReplyMessage, "Reply message is required")
	}

	found, err := service.repo.GetMessage(context, id)
	if err != nil {
		return nil, err
	}

	err = service.mailer.Send(context, mail.Message{
		To:      found.Email,
		Subject: "Re: " + found.Subject,
		Body:    fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\nDevfolio", found.Name, replyMessage),
	})
	if err != nil {
		service.logger.Error("reply_mail_failed",
			slog.String("message_id", id),
			slog.String("error", err.Error()),
		)
		return nil, apperr.BackendUnavailable(err)
	}

	updated, err := service.repo.MarkReplied(context, id, replyMessage)
	if err != nil {
		return nil, err
	}

	service.logger.Info("message_replied", slog.String("message_id", id))
	return updated, nil
}

// MarkSpam quarantines a message, removing it from the regular inbox.
func (service *Service) MarkSpam(context context.Context, id string) error {
	if err := service.repo.MarkSpam(context, id); err != nil {
		return err
	}

	service.logger.Info("message_marked_spam", slog.String("message_id", id))
	return nil
}

func (service *Service) DeleteMessage(context context.Context, id string) error {
	if err := service.repo.DeleteMessage(context, id); err != nil {
		return err
	}

	service.logger.Warn("message_deleted", slog.String("message_id", id))
	return nil
}

// UnreadCount returns how many non-spam messages still await a first read.
func (service *Service) UnreadCount(context context.Context) (int, error) {
	return service.repo.CountUnread(context)
}
