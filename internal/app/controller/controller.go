package controller

import (
	"strconv"

	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric path parameter. A zero return with ok=false
// means the 400 response has already been written.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errors.Respond400(c, "Некорректный идентификатор: "+raw)
		return 0, false
	}
	return uint(id), true
}

// isSelf reports whether the principal's id matches the target id.
func isSelf(c *gin.Context, targetID uint) bool {
	userID, ok := middleware.GetUserID(c)
	return ok && userID == targetID
}

// requireSelfOrAdmin writes a 403 and returns false unless the principal is
// the target user or an administrator.
func requireSelfOrAdmin(c *gin.Context, targetID uint) bool {
	if middleware.IsAdmin(c) || isSelf(c, targetID) {
		return true
	}
	errors.Respond403(c, "Доступ запрещен")
	return false
}
