package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/service"
)

const userContextKey = "auth.user"

// Auth validates the bearer token and stores the authenticated user in
// the request context. Every failure yields the same 401 body.
func Auth(tokens service.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid authentication credentials"})
			return
		}

		user, err := tokens.Authenticate(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid authentication credentials"})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the user placed in the context by Auth.
func CurrentUser(ctx *gin.Context) *model.User {
	if v, ok := ctx.Get(userContextKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
