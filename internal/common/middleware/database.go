package middleware

import (
	"github.com/gin-gonic/gin"

	"ruya-backend/internal/common/errors"
)

// RequireDatabase guards data endpoints when the store never initialized.
// The server still boots without a database so /health stays reachable;
// every data-dependent route answers 503 instead of attempting the operation.
func RequireDatabase(available func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !available() {
			sendErrorResponse(c, errors.NewDatabaseUnavailableError())
			return
		}
		c.Next()
	}
}
