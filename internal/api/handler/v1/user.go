package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/request"
	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/api/middleware"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

var errUnauthenticated = errors.New("not authenticated")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetProfile(ctx context.Context, userID uint) (domain.Profile, error)
	UpdateDisplayName(ctx context.Context, userID uint, displayName string) (domain.Profile, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/profile [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetProfile(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrProfileNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetProfile -> h.svc.GetProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateProfile godoc
// @Summary      Update the authenticated user's display name
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}  domain.Profile
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me/profile [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.UpdateDisplayName(ctx.Request.Context(), userID, req.DisplayName)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateDisplayName -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// getUserIDFromContext reads the user ID the JWT middleware stored.
func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	userID, ok := ctx.Value(middleware.ContextKeyUserID).(uint)
	if !ok || userID == 0 {
		return 0, response.ErrUnauthorized(errUnauthenticated)
	}

	return userID, nil
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		return domain.User{}, respErr
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(errUnauthenticated)
		}

		err = fmt.Errorf("v1.getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}
