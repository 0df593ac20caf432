package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/knowbaseai/knowbase/internal/httputil"
)

// respondError writes the shared error envelope. Middleware rejections go
// through the same shape as handler errors so clients parse one format.
func respondError(c *gin.Context, status int, code, message string) {
	httputil.RespondError(c, status, code, message)
}
