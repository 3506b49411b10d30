package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
)

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.logError(r, http.StatusUnprocessableEntity, err)
		h.writeValidationErrorResponse(w, validationErrs)
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = mapDomainError(err)
	}
	h.logError(r, appErr.StatusCode, err)
	h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// mapDomainError converts domain errors to application errors
func mapDomainError(err error) *apperrors.AppError {
	switch {
	// Upstreams
	case errors.Is(err, apperrors.ErrCMSUnavailable):
		return apperrors.NewUpstreamError(err, "CMS_UNAVAILABLE", "Page content is temporarily unavailable")
	case errors.Is(err, apperrors.ErrContributionsUnavailable):
		return apperrors.NewUpstreamError(err, "CONTRIBUTIONS_UNAVAILABLE", "GitHub activity is temporarily unavailable")
	case errors.Is(err, apperrors.ErrMalformedSeries):
		return apperrors.NewUpstreamError(err, "MALFORMED_SERIES", "Activity feed returned malformed data")
	case errors.Is(err, apperrors.ErrActivityUnavailable):
		return apperrors.NewUpstreamError(err, "ACTIVITY_UNAVAILABLE", "Activity feed is temporarily unavailable")

	// Client errors
	case errors.Is(err, apperrors.ErrBadRequest):
		return apperrors.NewBadRequestError(err, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return apperrors.NewNotFoundError(err, "Resource not found")

	// Rate limiting
	case errors.Is(err, apperrors.ErrRateLimited):
		return apperrors.NewRateLimitError()

	default:
		return apperrors.NewInternalError(err)
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error) {
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", statusCode),
		slog.String("error", err.Error()),
	}

	ctx := r.Context()
	switch {
	case statusCode >= 500:
		h.logger.ErrorContext(ctx, "server error", attrs...)
	case statusCode >= 400:
		h.logger.WarnContext(ctx, "client error", attrs...)
	default:
		h.logger.InfoContext(ctx, "request error", attrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// writeValidationErrorResponse writes a validation error response
func (h *ErrorHandler) writeValidationErrorResponse(w http.ResponseWriter, errs *apperrors.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   "VALIDATION_ERROR",
		Fields: errs.Errors,
	})
}

// HandleError Helper function to handle errors inline in handlers
// Usage: if HandleError(w, r, err, h.errorHandler) { return }
func HandleError(w http.ResponseWriter, r *http.Request, err error, handler *ErrorHandler) bool {
	if err != nil {
		handler.Handle(w, r, err)
		return true
	}
	return false
}
