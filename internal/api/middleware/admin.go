package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/domain"
)

var errAdminOnly = errors.New("admin access required")

type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireAdmin gates a route group on the authenticated user's role. Must
// run after VerifyJWT.
func RequireAdmin(users UserFinder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := ctx.Value(ContextKeyUserID).(uint)
		if !ok || userID == 0 {
			response.RenderErr(ctx, response.ErrUnauthorized(errAdminOnly))
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			err = fmt.Errorf("middleware.RequireAdmin -> users.GetUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		if user.Role != domain.RoleAdmin {
			response.RenderErr(ctx, response.ErrPermissionDenied(errAdminOnly))
			return
		}

		ctx.Next()
	}
}
