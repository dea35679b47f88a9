package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelplan/pkg/utils"
)

// JWTAuthMiddleware verifies the bearer token and stores the Clerk user id as "user_id".
func JWTAuthMiddleware(verifier utils.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		userID, err := verifier.Verify(tokenString)
		if err != nil {
			_ = c.Error(err)
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
