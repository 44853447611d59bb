package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/gomemo/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidSGF      = "INVALID_SGF"
	CodeInvalidRecord   = "INVALID_RECORD"
	CodeInvalidColor    = "INVALID_COLOR"
	CodeInvalidRange    = "INVALID_RANGE"
	CodeInvalidPosition = "INVALID_POSITION"
	CodeRecordNotFound  = "RECORD_NOT_FOUND"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeSessionClosed   = "SESSION_CLOSED"
	CodeNotInStudy      = "NOT_IN_STUDY"
	CodeNotInReplay     = "NOT_IN_REPLAY"
	CodeReplayExhausted = "REPLAY_EXHAUSTED"
	CodeNotOpponentTurn = "NOT_OPPONENT_TURN"
	CodeNotUserTurn     = "NOT_USER_TURN"
	CodeRequestTooLarge = "REQUEST_TOO_LARGE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status code err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Lookups
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Record not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrSessionClosed):
		return &httpError{http.StatusGone, APIError{CodeSessionClosed, "Session is closed"}}

	// Bad input. The wrapped message names the offending value, so pass it on.
	case errors.Is(err, model.ErrInvalidSGF):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSGF, err.Error()}}
	case errors.Is(err, model.ErrInvalidRecord):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRecord, err.Error()}}
	case errors.Is(err, model.ErrInvalidColor):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidColor, "Side must be B, W or empty"}}
	case errors.Is(err, model.ErrInvalidRange):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRange, "Invalid replay range"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}

	// Session state conflicts
	case errors.Is(err, model.ErrNotInStudy):
		return &httpError{http.StatusConflict, APIError{CodeNotInStudy, "Session is not in study phase"}}
	case errors.Is(err, model.ErrNotInReplay):
		return &httpError{http.StatusConflict, APIError{CodeNotInReplay, "Session is not in replay phase"}}
	case errors.Is(err, model.ErrReplayExhausted):
		return &httpError{http.StatusConflict, APIError{CodeReplayExhausted, "No moves left to replay"}}
	case errors.Is(err, model.ErrNotOpponentTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotOpponentTurn, "Current move belongs to the user"}}
	case errors.Is(err, model.ErrNotUserTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotUserTurn, "Current move is played automatically"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewRequestTooLargeError creates an error for oversized uploads
func NewRequestTooLargeError() error {
	return &httpError{http.StatusRequestEntityTooLarge, APIError{CodeRequestTooLarge, "Request body too large"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
