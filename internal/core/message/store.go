package message

import (
	"context"

	"github.com/mquinde/devfolio/internal/listing"
)

type Repository interface {
	listing.Store[Message]

	GetMessage(context context.Context, id string) (*Message, error)
	CreateMessage(context context.Context, message *Message) error
	UpdateStatus(context context.Context, id, status string) (*Message, error)
	MarkReplied(context context.Context, id, replyMessage string) (*Message, error)
	MarkSpam(context context.Context, id string) error
	DeleteMessage(context context.Context, id string) error
	CountUnread(context context.Context) (int, error)
	ListSpam(context context.Context, limit, offset int) ([]Message, int, error)
}
