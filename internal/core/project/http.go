package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mquinde/devfolio/internal/listing"
	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/middleware"
	requestutil "github.com/mquinde/devfolio/internal/platform/request"
	"github.com/mquinde/devfolio/internal/platform/respond"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listProjects)
	router.Get("/featured", handler.featuredProjects)
	router.Get("/search", handler.searchProjects)
	router.Get("/category/{category}", handler.projectsByCategory)
	router.Get("/by-slug/{slug}", handler.getProjectBySlug)
	router.Get("/{id}", handler.getProject)
	router.Post("/{id}/view", handler.recordView)
	router.Post("/{id}/like", handler.likeProject)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createProject)
		adminRoute.Put("/{id}", handler.updateProject)
		adminRoute.Delete("/{id}", handler.deleteProject)
	})
}

func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	// isPublished=all lets admins list drafts and published together; for
	// everyone else "all" is just an invalid boolean.
	var skip []string
	if role.IsAdmin() && request.URL.Query().Get("isPublished") == "all" {
		skip = append(skip, "isPublished")
	}

	listRequest, err := listing.FromHTTP(request, ListConfig().DefaultLimit, skip...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListProjects(request.Context(), role, listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Items, result.Meta)
}

func (handler *Handler) featuredProjects(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	limit := 0
	if raw := request.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(writer, request, apperr.InvalidPagination())
			return
		}
		limit = parsed
	}

	projects, err := handler.service.FeaturedProjects(request.Context(), role, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, projects)
}

func (handler *Handler) searchProjects(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	params, err := pagination.FromRequest(request, ListConfig().DefaultLimit)
	if err != nil {
		respond.Error(writer, request, paginationError(err))
		return
	}

	result, err := handler.service.SearchProjects(request.Context(), role, request.URL.Query().Get("q"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Items, result.Meta)
}

func (handler *Handler) projectsByCategory(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	params, err := pagination.FromRequest(request, ListConfig().DefaultLimit)
	if err != nil {
		respond.Error(writer, request, paginationError(err))
		return
	}

	category := requestutil.Param(request, "category")
	result, err := handler.service.ProjectsByCategory(request.Context(), role, category, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Items, result.Meta)
}

func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	found, err := handler.service.GetProject(request.Context(), role, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) getProjectBySlug(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	found, err := handler.service.GetProjectBySlug(request.Context(), role, requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.RecordView(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"views": views})
}

func (handler *Handler) likeProject(writer http.ResponseWriter, request *http.Request) {
	likes, err := handler.service.LikeProject(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"likes": likes})
}

func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Project
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateProject(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
	var input Project
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateProject(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteProject(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// paginationError maps the shared window sentinel to its API error.
func paginationError(err error) error {
	if errors.Is(err, pagination.ErrInvalidWindow) {
		return apperr.InvalidPagination()
	}
	return err
}
