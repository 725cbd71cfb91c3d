package skill

import (
	"context"
	"log/slog"

	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/platform/validate"
	"github.com/mquinde/devfolio/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	lister *listing.Lister[Skill]
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		lister: listing.NewLister[Skill](ListConfig(), repo),
		logger: logger,
	}
}

func (service *Service) ListSkills(context context.Context, role sec.UserRole, request listing.Request) (*listing.Result[Skill], error) {
	return service.lister.List(context, role, request)
}

// SkillsByCategory returns the active skills of one category in display
// order, best proficiency first within equal ranks.
func (service *Service) SkillsByCategory(context context.Context, category string) ([]Skill, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldCategory, category, Categories...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	skills, err := service.repo.ListByCategory(context, category)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []Skill{}
	}
	return skills, nil
}

func (service *Service) GetSkill(context context.Context, id string) (*Skill, error) {
	return service.repo.GetSkill(context, id)
}

func (service *Service) CreateSkill(context context.Context, createdBy string, skill *Skill) error {
	if skill.Color == "" {
		skill.Color = DefaultColor
	}

	if err := service.validateSkill(skill); err != nil {
		return err
	}

	skill.ID = uuidv7.New()
	skill.CreatedBy = createdBy

	if err := service.repo.CreateSkill(context, skill); err != nil {
		return err
	}

	service.logger.Info("skill_created",
		slog.String("skill_id", skill.ID),
		slog.String("category", skill.Category),
	)
	return nil
}

func (service *Service) UpdateSkill(context context.Context, id string, skill *Skill) error {
	existing, err := service.repo.GetSkill(context, id)
	if err != nil {
		return err
	}

	skill.ID = existing.ID
	skill.CreatedBy = existing.CreatedBy
	if skill.Color == "" {
		skill.Color = existing.Color
	}

	if err := service.validateSkill(skill); err != nil {
		return err
	}

	if err := service.repo.UpdateSkill(context, skill); err != nil {
		return err
	}

	service.logger.Info("skill_updated", slog.String("skill_id", id))
	return nil
}

func (service *Service) DeleteSkill(context context.Context, id string) error {
	if err := service.repo.DeleteSkill(context, id); err != nil {
		return err
	}

	service.logger.Warn("skill_deleted", slog.String("skill_id", id))
	return nil
}

// ReorderSkills applies a bulk sort-order update atomically.
func (service *Service) ReorderSkills(context context.Context, orders []OrderInput) error {
	validator := &validate.Validator{}
	validator.Custom(FieldSkills, len(orders) == 0, "At least one entry is required")
	for _, order := range orders {
		validator.UUID("id", order.ID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateSortOrders(context, orders); err != nil {
		return err
	}

	service.logger.Info("skills_reordered", slog.Int("count", len(orders)))
	return nil
}

func (service *Service) validateSkill(skill *Skill) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, skill.Name).MaxLen(FieldName, skill.Name, 50)
	validator.OneOf(FieldCategory, skill.Category, Categories...)
	validator.Range(FieldProficiency, skill.Proficiency, 0, 100)
	validator.Custom(FieldYears, skill.YearsOfExperience < 0, "Must not be negative")
	if skill.Description != nil {
		validator.MaxLen(FieldDescription, *skill.Description, 500)
	}

	return validator.Err()
}
