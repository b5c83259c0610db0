// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/stratametrics/internal/app/system/network"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for handler-level error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs err with the request's path, method, client address and request ID.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.LogWithFields(r, msg, err)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		network.Field(r),
	}, fields...)
	if id := middleware.GetReqID(r.Context()); id != "" {
		allFields = append(allFields, zap.String("request_id", id))
	}
	e.logger.Error(msg, allFields...)
}

// Handler provides error page handlers.
type Handler struct {
	layout viewdata.Layout
}

// NewHandler creates a new error Handler that draws pages inside layout.
func NewHandler(layout viewdata.Layout) *Handler {
	return &Handler{layout: layout}
}

// ErrorVM is the view model for error pages.
type ErrorVM struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// NotFound renders the 404 not found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "Not Found", "The page you asked for does not exist.")
}

// MethodNotAllowed renders the 405 page.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "That action is not supported here.")
}

// InternalError renders the 500 internal server error page.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, "Server Error", "Something went wrong. Please try again.")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	// htmx swaps the body into a panel, so a full page would nest the layout.
	if r.Header.Get("HX-Request") == "true" {
		http.Error(w, message, status)
		return
	}

	vm := ErrorVM{
		BaseVM:  viewdata.New(r, h.layout, title),
		Status:  status,
		Message: message,
	}

	w.WriteHeader(status)
	templates.Render(w, r, "errors/page", vm)
}
