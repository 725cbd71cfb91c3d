// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package account

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/middleware"
	requestutil "github.com/mquinde/devfolio/internal/platform/request"
	"github.com/mquinde/devfolio/internal/platform/respond"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/platform/validate"
	"github.com/mquinde/devfolio/pkg/pagination"
)

// defaultListLimit is the page size of the admin user listing.
const defaultListLimit = 20

// Handler implements the admin-only user management endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user management endpoints. The whole surface is
// admin-only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listUsers)
		adminRoute.Get("/stats", handler.userStats)
		adminRoute.Get("/{id}", handler.getUser)
		adminRoute.Put("/{id}", handler.updateUser)
		adminRoute.Delete("/{id}", handler.deleteUser)
	})
}

/*
ListUsers returns one page of registered accounts.

GET /api/v1/users?page=&limit=&role=&isActive=&search=

Response:
  - 200: Paginated user list
  - 400: ErrInvalidJSON: Bad filter or pagination values
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request, defaultListLimit)
	if err != nil {
		respond.Error(writer, request, apperr.InvalidPagination())
		return
	}

	query := request.URL.Query()
	filter := Filter{
		Role:   query.Get("role"),
		Search: query.Get("search"),
	}
	if raw := query.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("isActive", "Must be a boolean"))
			return
		}
		filter.IsActive = &active
	}

	result, err := handler.service.ListUsers(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Users, result.Meta)
}

/*
UserStats returns aggregate account counters.

GET /api/v1/users/stats

Response:
  - 200: Stats
*/
func (handler *Handler) userStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.UserStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

/*
GetUser returns one account by ID.

GET /api/v1/users/{id}

Response:
  - 200: User
  - 404: ErrNotFound
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetUser(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

/*
UpdateUser applies administrative changes to an account.

PUT /api/v1/users/{id}

Request:
  - Body: updateUserRequest (Name, Role, IsActive; all optional)

Response:
  - 200: User: Updated account
  - 400: ErrInvalidJSON: Validation failure or self-lockout attempt
  - 404: ErrNotFound
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), actorID, requestutil.ID(request, "id"), UpdateInput{
		Name:     input.Name,
		Role:     input.Role,
		IsActive: input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteUser permanently removes an account.

DELETE /api/v1/users/{id}

Response:
  - 204: No Content
  - 400: ErrInvalidJSON: Self-deletion attempt
  - 404: ErrNotFound
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
