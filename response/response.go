// Package response implements the uniform JSON envelope every endpoint
// answers with.
package response

import (
	"errors"
	"net/http"

	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the wire shape of every response. Data is omitted on errors.
type Envelope struct {
	Data    interface{} `json:"data,omitempty"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// WriteSuccess writes a success envelope with the given HTTP status.
func WriteSuccess(resp *restful.Response, status int, data interface{}, message string) {
	if message == "" {
		message = "Success"
	}
	_ = resp.WriteHeaderAndJson(status, Envelope{
		Data:    data,
		Status:  statusSuccess,
		Message: message,
	}, restful.MIME_JSON)
}

// WriteOK writes a 200 success envelope.
func WriteOK(resp *restful.Response, data interface{}, message string) {
	WriteSuccess(resp, http.StatusOK, data, message)
}

// WriteCreated writes a 201 success envelope.
func WriteCreated(resp *restful.Response, data interface{}, message string) {
	WriteSuccess(resp, http.StatusCreated, data, message)
}

// WriteError maps err onto the error envelope. Typed *apperrors.Error values
// keep their status and message; anything else collapses to a generic 500 so
// engine details never leak to clients.
func WriteError(resp *restful.Response, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status = appErr.Status
		message = appErr.Message
	}

	_ = resp.WriteHeaderAndJson(status, Envelope{
		Status:  statusError,
		Message: message,
	}, restful.MIME_JSON)
}
