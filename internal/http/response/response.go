package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondCatalogError maps a catalog error onto its HTTP status. Internal
// failures never leak their cause to the client.
func RespondCatalogError(c *gin.Context, err error) {
	code := catalog.CodeOf(err)
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		RespondError(c, status, string(catalog.CodeInternal), errors.New("internal error"))
		return
	}
	msg := err.Error()
	var ce *catalog.Error
	if errors.As(err, &ce) && ce.Message != "" {
		msg = ce.Message
	}
	RespondError(c, status, string(code), errors.New(msg))
}

func StatusFor(code catalog.ErrorCode) int {
	switch code {
	case catalog.CodeNotFound:
		return http.StatusNotFound
	case catalog.CodeDuplicateName:
		return http.StatusBadRequest
	case catalog.CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
