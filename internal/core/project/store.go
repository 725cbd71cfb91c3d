package project

import (
	"context"

	"github.com/mquinde/devfolio/internal/listing"
)

type Repository interface {
	listing.Store[Project]

	GetProject(context context.Context, id string) (*Project, error)
	GetProjectBySlug(context context.Context, slug string) (*Project, error)
	CreateProject(context context.Context, project *Project) error
	UpdateProject(context context.Context, project *Project) error
	DeleteProject(context context.Context, id string) error
	IncrementViews(context context.Context, id string) (int, error)
	IncrementLikes(context context.Context, id string) (int, error)
	SearchProjects(context context.Context, publishedOnly bool, term string, limit, offset int) ([]Project, int, error)
}
