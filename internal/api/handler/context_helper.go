package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/espinosa98/rifa-backend/pkg/response"
)

// MustGetAccountID extracts the authenticated account ID from the Gin
// context. Writes a 401 and returns false when the auth middleware did not
// run; callers return immediately on ok=false.
func MustGetAccountID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		response.Unauthorized(c, 10002, "authentication required")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "authentication required")
		return 0, false
	}
	return id, true
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
