package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// statusByKind maps domain error kinds to HTTP status codes.
var statusByKind = map[sharedDomain.ErrorKind]int{
	sharedDomain.KindValidation:        http.StatusBadRequest,
	sharedDomain.KindNotFound:          http.StatusNotFound,
	sharedDomain.KindResourceConflict:  http.StatusConflict,
	sharedDomain.KindPartialFailure:    http.StatusMultiStatus,
	sharedDomain.KindInvalidTransition: http.StatusUnprocessableEntity,
}

// toAPIError classifies err. Unclassified errors are internal and their
// message is not exposed.
func toAPIError(err error) *APIError {
	kind, ok := sharedDomain.KindOf(err)
	if !ok {
		return &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"}
	}
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &APIError{Status: status, Code: string(kind), Message: err.Error()}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, &APIError{
		Status:  http.StatusBadRequest,
		Code:    string(sharedDomain.KindValidation),
		Message: message,
	})
}

func writeError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
