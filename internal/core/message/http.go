package message

import (
	"errors"
	"net"
	"net/http"

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
	// Public contact-form submission
	router.Post("/", handler.submitMessage)

	// Admin inbox
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listMessages)
		adminRoute.Get("/spam", handler.listSpam)
		adminRoute.Get("/unread-count", handler.unreadCount)
		adminRoute.Get("/{id}", handler.getMessage)
		adminRoute.Put("/{id}/status", handler.updateStatus)
		adminRoute.Post("/{id}/reply", handler.replyToMessage)
		adminRoute.Post("/{id}/spam", handler.markSpam)
		adminRoute.Delete("/{id}", handler.deleteMessage)
	})
}

func (handler *Handler) submitMessage(writer http.ResponseWriter, request *http.Request) {
	var input ContactInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.SubmitMessage(request.Context(), input, clientIP(request), request.UserAgent())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.CreatedMessage(writer, "Message sent successfully", created)
}

func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleOf(requestutil.Claims(request))

	listRequest, err := listing.FromHTTP(request, ListConfig().DefaultLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListMessages(request.Context(), role, listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Items, result.Meta)
}

func (handler *Handler) listSpam(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request, ListConfig().DefaultLimit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidWindow) {
			err = apperr.InvalidPagination()
		}
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ListSpam(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result.Items, result.Meta)
}

func (handler *Handler) unreadCount(writer http.ResponseWriter, request *http.Request) {
	count, err := handler.service.UnreadCount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": count})
}

func (handler *Handler) getMessage(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetMessage(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateStatus(request.Context(), requestutil.ID(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) replyToMessage(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		ReplyMessage string `json:"replyMessage"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.ReplyToMessage(request.Context(), requestutil.ID(request, "id"), input.ReplyMessage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) markSpam(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.MarkSpam(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Message marked as spam")
}

func (handler *Handler) deleteMessage(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteMessage(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// clientIP strips the port from RemoteAddr; middleware.RealIP has already
// substituted proxy headers where trusted.
func clientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
