package skill

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/middleware"
	requestutil "github.com/mquinde/devfolio/internal/platform/request"
	"github.com/mquinde/devfolio/internal/platform/respond"
	"github.com/mquinde/devfolio/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listSkills)
	router.Get("/category/{category}", handler.skillsByCategory)
	router.Get("/{id}", handler.getSkill)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createSkill)
		adminRoute.Put("/reorder", handler.reorderSkills)
		adminRoute.Put("/{id}", handler.updateSkill)
		adminRoute.Delete("/{id}", handler.deleteSkill)
	})
}

func (handler *Handler) listSkills(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	listRequest, err := listing.FromHTTP(request, ListConfig().DefaultLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListSkills(request.Context(), role, listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Items, result.Meta)
}

func (handler *Handler) skillsByCategory(writer http.ResponseWriter, request *http.Request) {
	skills, err := handler.service.SkillsByCategory(request.Context(), requestutil.Param(request, "category"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, skills)
}

func (handler *Handler) getSkill(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetSkill(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createSkill(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Skill
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateSkill(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateSkill(writer http.ResponseWriter, request *http.Request) {
	var input Skill
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateSkill(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteSkill(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSkill(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) reorderSkills(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Skills []OrderInput `json:"skills"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReorderSkills(request.Context(), input.Skills); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Skills reordered successfully")
}
