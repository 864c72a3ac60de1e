package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/Maya170605/customs-backend/pkg/logger"
)

// InternalMessage is the literal 500 body; it is part of the external contract.
const InternalMessage = "Произошла внутренняя ошибка сервера"

// ErrorResponse is the standard error body: a single human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError writes the error body with the given status code.
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

func Respond401(c *gin.Context, message string) {
	if message == "" {
		message = "Требуется аутентификация"
	}
	RespondWithError(c, http.StatusUnauthorized, message)
}

func Respond403(c *gin.Context, message string) {
	if message == "" {
		message = "Доступ запрещен"
	}
	RespondWithError(c, http.StatusForbidden, message)
}

func Respond400(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message)
}

func Respond404(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, message)
}

func Respond500(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, InternalMessage)
}

// Respond maps a service error onto the HTTP contract: not-found targets are
// 404, authorization failures 401/403, everything else domain-shaped is 400
// (conflicts are collapsed into 400 with a message, as the original contract
// does). Unknown errors are logged and become an opaque 500.
func Respond(c *gin.Context, err error) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case KindUnauthorized:
			Respond401(c, domainErr.Message)
		case KindForbidden:
			Respond403(c, domainErr.Message)
		case KindNotFound:
			Respond404(c, domainErr.Message)
		default:
			Respond400(c, domainErr.Message)
		}
		return
	}

	logger.Error("Unexpected error", err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
	Respond500(c)
}
