package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/platform/validate"
	"github.com/mquinde/devfolio/pkg/pagination"
	"github.com/mquinde/devfolio/pkg/slug"
	"github.com/mquinde/devfolio/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	lister *listing.Lister[Project]
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		lister: listing.NewLister[Project](ListConfig(), repo),
		logger: logger,
	}
}

func (service *Service) ListProjects(context context.Context, role sec.UserRole, request listing.Request) (*listing.Result[Project], error) {
	return service.lister.List(context, role, request)
}

// FeaturedProjects returns the public featured shelf: published, featured,
// highest priority first.
func (service *Service) FeaturedProjects(context context.Context, role sec.UserRole, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = FeaturedShelfSize
	}
	predicate := listing.BasePredicate(listing.KindProject, role).And("featured", true)

	result, err := service.lister.ListForced(context, predicate, listing.FeaturedOrder(), pagination.DefaultPage, limit)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// ProjectsByCategory lists one category page under the caller's visibility.
func (service *Service) ProjectsByCategory(context context.Context, role sec.UserRole, category string, params pagination.Params) (*listing.Result[Project], error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldCategory, category, Categories...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	predicate := listing.BasePredicate(listing.KindProject, role).And("category", category)
	order, err := listing.ResolveSort(ListConfig(), "", "")
	if err != nil {
		return nil, err
	}
	return service.lister.ListForced(context, predicate, order, params.Page, params.Limit)
}

// SearchProjects runs a free-text match over title, description and tags,
// under the caller's visibility baseline.
func (service *Service) SearchProjects(context context.Context, role sec.UserRole, term string, params pagination.Params) (*listing.Result[Project], error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, validate.RequiredError("q", "Search term is required")
	}

	projects, total, err := service.repo.SearchProjects(context, !role.IsAdmin(), term, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	meta, err := pagination.Paginate(params.Page, params.Limit, total)
	if err != nil {
		return nil, apperr.InvalidPagination()
	}
	if projects == nil {
		projects = []Project{}
	}
	return &listing.Result[Project]{Items: projects, Meta: meta}, nil
}

// GetProject returns one project by id. Drafts are indistinguishable from
// missing records for non-admin callers.
func (service *Service) GetProject(context context.Context, role sec.UserRole, id string) (*Project, error) {
	found, err := service.repo.GetProject(context, id)
	if err != nil {
		return nil, err
	}
	if !found.IsPublished && !role.IsAdmin() {
		return nil, apperr.NotFound("Project")
	}
	return found, nil
}

// GetProjectBySlug is the public permalink lookup.
func (service *Service) GetProjectBySlug(context context.Context, role sec.UserRole, slugValue string) (*Project, error) {
	found, err := service.repo.GetProjectBySlug(context, slugValue)
	if err != nil {
		return nil, err
	}
	if !found.IsPublished && !role.IsAdmin() {
		return nil, apperr.NotFound("Project")
	}
	return found, nil
}

// RecordView bumps the view counter and returns the new total.
func (service *Service) RecordView(context context.Context, id string) (int, error) {
	return service.repo.IncrementViews(context, id)
}

// LikeProject bumps the like counter and returns the new total.
func (service *Service) LikeProject(context context.Context, id string) (int, error) {
	return service.repo.IncrementLikes(context, id)
}

func (service *Service) CreateProject(context context.Context, createdBy string, project *Project) error {
	if project.Status == "" {
		project.Status = DefaultStatus
	}
	if project.Slug == "" {
		project.Slug = slug.From(project.Title)
	}

	if err := service.validateProject(project); err != nil {
		return err
	}

	project.ID = uuidv7.New()
	project.CreatedBy = createdBy
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}

	if err := service.repo.CreateProject(context, project); err != nil {
		return err
	}

	service.logger.Info("project_created",
		slog.String("project_id", project.ID),
		slog.String("slug", project.Slug),
	)
	return nil
}

func (service *Service) UpdateProject(context context.Context, id string, project *Project) error {
	existing, err := service.repo.GetProject(context, id)
	if err != nil {
		return err
	}

	project.ID = existing.ID
	project.CreatedBy = existing.CreatedBy
	project.Views = existing.Views
	project.Likes = existing.Likes
	if project.Status == "" {
		project.Status = existing.Status
	}
	if project.Slug == "" {
		project.Slug = existing.Slug
	}

	if err := service.validateProject(project); err != nil {
		return err
	}

	if err := service.repo.UpdateProject(context, project); err != nil {
		return err
	}

	service.logger.Info("project_updated", slog.String("project_id", id))
	return nil
}

func (service *Service) DeleteProject(context context.Context, id string) error {
	if err := service.repo.DeleteProject(context, id); err != nil {
		return err
	}

	service.logger.Warn("project_deleted", slog.String("project_id", id))
	return nil
}

func (service *Service) validateProject(project *Project) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, project.Title).MaxLen(FieldTitle, project.Title, 100)
	validator.Required(FieldDescription, project.Description).MaxLen(FieldDescription, project.Description, 1000)
	validator.Required(FieldThumbnail, project.Thumbnail)
	validator.Slug(FieldSlug, project.Slug)
	validator.OneOf(FieldCategory, project.Category, Categories...)
	validator.OneOf(FieldStatus, project.Status, Statuses...)
	validator.Custom(FieldTechnologies, len(project.Technologies) == 0, "At least one technology is required")
	validator.Custom(FieldPriority, project.Priority < 0, "Must not be negative")

	if project.ShortDescription != nil {
		validator.MaxLen(FieldShortDescription, *project.ShortDescription, 200)
	}
	if project.LiveURL != nil {
		validator.URL(FieldLiveURL, *project.LiveURL)
	}
	if project.GithubURL != nil {
		validator.URL(FieldGithubURL, *project.GithubURL)
	}

	return validator.Err()
}
