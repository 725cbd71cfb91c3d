// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (success or error) across the entire
// application follows the same JSON envelope, so the SPA front end can parse
// results with a single code path:
//
//	{"success": true,  "data": ..., "pagination": {...}?, "message": "..."?}
//	{"success": false, "message": "...", "code": "...", "details": [...]?}
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mquinde/devfolio/internal/platform/apperr"
	"github.com/mquinde/devfolio/internal/platform/ctxkey"
	"github.com/mquinde/devfolio/pkg/pagination"
)

// exposeCauses controls whether internal error detail is included in error
// envelopes. Enabled only in development; set once at startup before the
// server accepts traffic.
var exposeCauses bool

// ExposeErrorCauses toggles the development-only "error" field on failure
// envelopes. Never enable in production.
func ExposeErrorCauses(enabled bool) {
	exposeCauses = enabled
}

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
	// Cause carries internal error detail; populated only in development mode.
	Cause string `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Success: true, Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Success: true, Data: data})
}

// CreatedMessage writes a 201 Created response with a human-readable message.
func CreatedMessage(writer http.ResponseWriter, message string, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Success: true, Message: message, Data: data})
}

// Message writes a 200 OK response carrying only a confirmation message.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Success: true, Message: message})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Success: true, Data: data, Pagination: &metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := ErrorEnvelope{
		Success: false,
		Message: appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	}

	if exposeCauses && appError.Cause != nil {
		envelope.Cause = appError.Cause.Error()
	}

	JSON(writer, appError.HTTPStatus, envelope)
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
