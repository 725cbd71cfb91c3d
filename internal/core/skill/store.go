package skill

import (
	"context"

	"github.com/mquinde/devfolio/internal/listing"
)

type Repository interface {
	listing.Store[Skill]

	GetSkill(context context.Context, id string) (*Skill, error)
	CreateSkill(context context.Context, skill *Skill) error
	UpdateSkill(context context.Context, skill *Skill) error
	DeleteSkill(context context.Context, id string) error
	ListByCategory(context context.Context, category string) ([]Skill, error)
	UpdateSortOrders(context context.Context, orders []OrderInput) error
}
