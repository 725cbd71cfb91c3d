package message

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/dberr"
	"github.com/mquinde/devfolio/internal/platform/mail"
	"github.com/mquinde/devfolio/internal/platform/sec"
)

type fakeRepository struct {
	messages map[string]*Message
}

func newFakeRepository(messages ...*Message) *fakeRepository {
	repo := &fakeRepository{messages: map[string]*Message{}}
	for _, m := range messages {
		repo.messages[m.ID] = m
	}
	return repo
}

func (r *fakeRepository) matches(m *Message, predicate listing.Predicate) bool {
	for _, clause := range predicate.Clauses {
		switch clause.Field {
		case "isSpam":
			if m.IsSpam != clause.Value.(bool) {
				return false
			}
		case "status":
			if m.Status != clause.Value.(string) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *fakeRepository) Count(_ context.Context, predicate listing.Predicate) (int, error) {
	n := 0
	for _, m := range r.messages {
		if r.matches(m, predicate) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) Find(_ context.Context, predicate listing.Predicate, _ listing.OrderSpec, limit, offset int) ([]Message, error) {
	var matched []Message
	for _, m := range r.messages {
		if r.matches(m, predicate) {
			matched = append(matched, *m)
		}
	}
	if offset >= len(matched) {
		return []Message{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeRepository) GetMessage(_ context.Context, id string) (*Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeRepository) CreateMessage(_ context.Context, m *Message) error {
	r.messages[m.ID] = m
	return nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id, status string) (*Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	m.Status = status
	copied := *m
	return &copied, nil
}

func (r *fakeRepository) MarkReplied(_ context.Context, id, replyMessage string) (*Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	m.Status = StatusReplied
	m.ReplyMessage = &replyMessage
	copied := *m
	return &copied, nil
}

func (r *fakeRepository) MarkSpam(_ context.Context, id string) error {
	m, ok := r.messages[id]
	if !ok {
		return dberr.ErrNotFound
	}
	m.IsSpam = true
	m.Status = StatusArchived
	return nil
}

func (r *fakeRepository) DeleteMessage(_ context.Context, id string) error {
	if _, ok := r.messages[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

func (r *fakeRepository) CountUnread(_ context.Context) (int, error) {
	n := 0
	for _, m := range r.messages {
		if m.Status == StatusNew && !m.IsSpam {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) ListSpam(_ context.Context, limit, offset int) ([]Message, int, error) {
	var spam []Message
	for _, m := range r.messages {
		if m.IsSpam {
			spam = append(spam, *m)
		}
	}
	return spam, len(spam), nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, message mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

func newTestService(repo Repository, mailer mail.Mailer) *Service {
	return NewService(repo, mailer, "admin@devfolio.dev", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func inboxMessage(id, status string, spam bool) *Message {
	return &Message{
		ID: id, Name: "Visitor", Email: "visitor@example.com",
		Subject: "Hello", Body: "Hi there",
		Category: DefaultCategory, Status: status, Priority: DefaultPriority,
		IsSpam: spam,
	}
}

func TestService_SubmitMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission gets defaults and client info", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakeMailer{})

		created, err := service.SubmitMessage(ctx, ContactInput{
			Name:    "Ada",
			Email:   "ada@example.com",
			Subject: "Project inquiry",
			Body:    "I would like to talk.",
		}, "203.0.113.9", "curl/8.0")

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, StatusNew, created.Status)
		assert.Equal(t, DefaultPriority, created.Priority)
		assert.Equal(t, DefaultCategory, created.Category)
		assert.Equal(t, "203.0.113.9", created.IPAddress)
		assert.Equal(t, "curl/8.0", created.UserAgent)
	})

	t.Run("submission succeeds even when the mail relay is down", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, &fakeMailer{err: errors.New("relay refused")})

		_, err := service.SubmitMessage(ctx, ContactInput{
			Name: "Ada", Email: "ada@example.com", Subject: "Hi", Body: "Hello",
		}, "", "")

		require.NoError(t, err)
	})

	t.Run("invalid submission reports all field errors", func(t *testing.T) {
		service := newTestService(newFakeRepository(), &fakeMailer{})

		_, err := service.SubmitMessage(ctx, ContactInput{Email: "not-an-email"}, "", "")

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.GreaterOrEqual(t, len(appErr.Details), 3)
	})
}

func TestService_ListMessages(t *testing.T) {
	repo := newFakeRepository(
		inboxMessage("m1", StatusNew, false),
		inboxMessage("m2", StatusRead, false),
		inboxMessage("m3", StatusNew, true),
	)
	service := newTestService(repo, &fakeMailer{})

	result, err := service.ListMessages(context.Background(), sec.RoleAdmin, listing.Request{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Meta.Total, "spam stays out of the inbox")
}

func TestService_GetMessage(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository(inboxMessage("m1", StatusNew, false), inboxMessage("m2", StatusReplied, false))
	service := newTestService(repo, &fakeMailer{})

	t.Run("first read transitions new to read", func(t *testing.T) {
		found, err := service.GetMessage(ctx, "m1")

		require.NoError(t, err)
		assert.Equal(t, StatusRead, found.Status)
		assert.Equal(t, StatusRead, repo.messages["m1"].Status)
	})

	t.Run("later states are untouched", func(t *testing.T) {
		found, err := service.GetMessage(ctx, "m2")

		require.NoError(t, err)
		assert.Equal(t, StatusReplied, found.Status)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	service := newTestService(newFakeRepository(inboxMessage("m1", StatusRead, false)), &fakeMailer{})

	_, err := service.UpdateStatus(context.Background(), "m1", "starred")

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_ReplyToMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("reply emails the sender and records the reply", func(t *testing.T) {
		repo := newFakeRepository(inboxMessage("m1", StatusRead, false))
		mailer := &fakeMailer{}
		service := newTestService(repo, mailer)

		updated, err := service.ReplyToMessage(ctx, "m1", "Thanks, talk soon.")

		require.NoError(t, err)
		assert.Equal(t, StatusReplied, updated.Status)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "visitor@example.com", mailer.sent[0].To)
		assert.Equal(t, "Re: Hello", mailer.sent[0].Subject)
	})

	t.Run("mail failure surfaces and leaves the message unchanged", func(t *testing.T) {
		repo := newFakeRepository(inboxMessage("m1", StatusRead, false))
		service := newTestService(repo, &fakeMailer{err: errors.New("relay refused")})

		_, err := service.ReplyToMessage(ctx, "m1", "Thanks.")

		require.Error(t, err)
		assert.Equal(t, "BACKEND_UNAVAILABLE", apperr.As(err).Code)
		assert.Equal(t, StatusRead, repo.messages["m1"].Status)
	})

	t.Run("empty reply is rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository(), &fakeMailer{})

		_, err := service.ReplyToMessage(ctx, "m1", "")

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_MarkSpam(t *testing.T) {
	repo := newFakeRepository(inboxMessage("m1", StatusNew, false))
	service := newTestService(repo, &fakeMailer{})

	require.NoError(t, service.MarkSpam(context.Background(), "m1"))
	assert.True(t, repo.messages["m1"].IsSpam)
	assert.Equal(t, StatusArchived, repo.messages["m1"].Status)

	count, err := service.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
