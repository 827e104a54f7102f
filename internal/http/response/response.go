package response

import (
	"encoding/json"
	"net/http"

	"jobboard/internal/common"
	"jobboard/internal/observability"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type ErrorCollector interface {
	IncErrors()
}

var errorCollector ErrorCollector

// SetErrorCollector registers the counter bumped for every 5xx response.
func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func Error(w http.ResponseWriter, err error) {
	appErr, ok := common.As(err)
	if !ok {
		appErr = common.NewError(common.CodeInternal, "Internal server error.", err)
	}
	status := StatusCode(appErr.Code)
	message := appErr.Message
	if status >= http.StatusInternalServerError {
		observability.Default().WithError(err).Error("request failed: " + appErr.Message)
		if errorCollector != nil {
			errorCollector.IncErrors()
		}
		if message == "" {
			message = "Internal server error."
		}
	}
	JSON(w, status, Envelope{Status: StatusError, Message: message, Errors: appErr.Fields})
}

func StatusCode(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeConflict:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden, common.CodeLocked:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
