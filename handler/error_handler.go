package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/pagebridge/bridge"
	"github.com/dmitrymomot/pagebridge/pkg/logger"
	"github.com/dmitrymomot/pagebridge/pkg/requestid"
)

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string][]string
	LogLevel   slog.Level
}

// Classify maps err to a status, code and log level. Validation errors win
// over HTTP errors; anything else is a 500 whose message is not exposed.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternalServerError.Key,
		Message:    http.StatusText(http.StatusInternalServerError),
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
		info.Message = http.StatusText(httpErr.Code)
	}

	if verr, ok := AsValidationError(err); ok {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Code = "validation_error"
		info.Message = verr.Error()
		info.Details = verr.Fields()
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// wantsJSON reports whether the client expects a JSON error: bridge router
// visits and API clients.
func wantsJSON(r *http.Request) bool {
	return bridge.IsBridgeRequest(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}

// NewErrorHandler logs the error and answers with JSON for router visits and
// API clients and a plain text page otherwise. Nothing is written when the
// page renderer already produced a response.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err)
		reqID := requestid.FromContext(r.Context())

		log.LogAttrs(r.Context(), info.LogLevel, "request failed",
			logger.RequestID(reqID),
			logger.Error(err),
			logger.Status(info.StatusCode),
			logger.Component("error_handler"),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("bridge", bridge.IsBridgeRequest(r)),
		)

		if page := ctx.Page(); page != nil && page.Written() {
			return
		}

		w := ctx.ResponseWriter()
		if wantsJSON(r) {
			resp := JSONError(info.StatusCode, ErrorDetail{
				Code:      info.Code,
				Message:   info.Message,
				Details:   info.Details,
				RequestID: reqID,
			})
			if rerr := resp.Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to write error response",
					logger.Error(rerr),
					logger.RequestID(reqID),
				)
			}
			return
		}
		http.Error(w, info.Message, info.StatusCode)
	}
}
