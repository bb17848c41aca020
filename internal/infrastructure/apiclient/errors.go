package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"planejao/internal/domain/policy"
	"planejao/internal/usecase"
)

// ErrUnavailable matches failures caused by the breaker refusing calls.
var ErrUnavailable = errors.New("api unavailable")

// APIError is a non-2xx answer from the API. It unwraps to the domain sentinel
// matching its code, so callers can use errors.Is as they would server-side.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Code = payload.Code
		e.Message = payload.Message
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error status=%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error status=%d code=%s: %s", e.Status, e.Code, e.Message)
}

var codeSentinels = map[string]error{
	"PROJECT_NOT_FOUND":         usecase.ErrProjectNotFound,
	"MEMBER_NOT_FOUND":          usecase.ErrMemberNotFound,
	"MANAGER_NOT_FOUND":         usecase.ErrManagerNotFound,
	"MEMBER_NOT_ASSIGNED":       usecase.ErrMemberNotAssigned,
	"MEMBER_ALREADY_ASSIGNED":   usecase.ErrMemberAlreadyAssigned,
	"INVALID_STATUS_TRANSITION": policy.ErrInvalidStatusTransition,
	"PROJECT_NOT_DELETABLE":     policy.ErrProjectNotDeletable,
	"MEMBER_AT_CAPACITY":        policy.ErrMemberAtCapacity,
}

func (e *APIError) Unwrap() error {
	return codeSentinels[e.Code]
}
