package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/request"
	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type GarageService interface {
	GetGarage(ctx context.Context, userID uint) ([]domain.GarageItem, error)
	AddScooter(ctx context.Context, userID, scooterModelID uint, status domain.GarageStatus) (domain.GarageItem, error)
	Promote(ctx context.Context, userID, itemID uint) (domain.GarageItem, error)
	Demote(ctx context.Context, userID, itemID uint) (domain.GarageItem, error)
	UpdateDetails(ctx context.Context, userID, itemID uint, nickname, photoURL string, mileageKM int) (domain.GarageItem, error)
	RemoveScooter(ctx context.Context, userID, itemID uint) error
	Membership(ctx context.Context, userID, scooterModelID uint) (domain.GarageMembership, error)
}

type GarageHandler struct {
	svc GarageService
}

func NewGarageHandler(svc GarageService) *GarageHandler {
	return &GarageHandler{
		svc: svc,
	}
}

// HandleGetGarage godoc
// @Summary      List the authenticated user's garage
// @Tags         garage
// @Produce      json
// @Success      200  {array}   domain.GarageItem
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /garage [get]
// @Security     BearerAuth
func (h *GarageHandler) HandleGetGarage(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.GetGarage(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGarage -> h.svc.GetGarage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleAddGarageItem godoc
// @Summary      Add a scooter to the garage
// @Tags         garage
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddGarageItemRequest true "request body"
// @Success      201      {object}  domain.GarageItem
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /garage [post]
// @Security     BearerAuth
func (h *GarageHandler) HandleAddGarageItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddGarageItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.AddScooter(ctx.Request.Context(), userID, req.ScooterModelID, domain.GarageStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrScooterNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrScooterNotFound))
			return
		}
		if errors.Is(err, service.ErrAlreadyInGarage) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyInGarage))
			return
		}

		err = fmt.Errorf("v1.HandleAddGarageItem -> h.svc.AddScooter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandlePromoteGarageItem godoc
// @Summary      Mark a garage scooter as owned
// @Tags         garage
// @Produce      json
// @Param        itemID  path      int true "garage item id"
// @Success      200     {object}  domain.GarageItem
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /garage/{itemID}/promote [post]
// @Security     BearerAuth
func (h *GarageHandler) HandlePromoteGarageItem(ctx *gin.Context) {
	h.changeStatus(ctx, h.svc.Promote)
}

// HandleDemoteGarageItem godoc
// @Summary      Mark a garage scooter back as favorited
// @Tags         garage
// @Produce      json
// @Param        itemID  path      int true "garage item id"
// @Success      200     {object}  domain.GarageItem
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /garage/{itemID}/demote [post]
// @Security     BearerAuth
func (h *GarageHandler) HandleDemoteGarageItem(ctx *gin.Context) {
	h.changeStatus(ctx, h.svc.Demote)
}

func (h *GarageHandler) changeStatus(ctx *gin.Context, op func(context.Context, uint, uint) (domain.GarageItem, error)) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, respErr := pathID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, err := op(ctx.Request.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, service.ErrGarageItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGarageItemNotFound))
			return
		}

		err = fmt.Errorf("v1.GarageHandler.changeStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleUpdateGarageItem godoc
// @Summary      Update a garage scooter's nickname, photo or mileage
// @Tags         garage
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                            true "garage item id"
// @Param        request  body      request.UpdateGarageItemRequest true "request body"
// @Success      200      {object}  domain.GarageItem
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /garage/{itemID} [put]
// @Security     BearerAuth
func (h *GarageHandler) HandleUpdateGarageItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, respErr := pathID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateGarageItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.UpdateDetails(ctx.Request.Context(), userID, itemID, req.Nickname, req.PhotoURL, req.MileageKM)
	if err != nil {
		if errors.Is(err, service.ErrGarageItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGarageItemNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateGarageItem -> h.svc.UpdateDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleRemoveGarageItem godoc
// @Summary      Remove a scooter from the garage
// @Tags         garage
// @Produce      json
// @Param        itemID  path  int true "garage item id"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /garage/{itemID} [delete]
// @Security     BearerAuth
func (h *GarageHandler) HandleRemoveGarageItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, respErr := pathID(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemoveScooter(ctx.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, service.ErrGarageItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGarageItemNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleRemoveGarageItem -> h.svc.RemoveScooter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGarageMembership godoc
// @Summary      Check whether a scooter is in the garage
// @Tags         garage
// @Produce      json
// @Param        scooterID  path      int true "scooter model id"
// @Success      200        {object}  domain.GarageMembership
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /garage/membership/{scooterID} [get]
// @Security     BearerAuth
func (h *GarageHandler) HandleGarageMembership(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	scooterID, respErr := pathID(ctx, "scooterID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	membership, err := h.svc.Membership(ctx.Request.Context(), userID, scooterID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGarageMembership -> h.svc.Membership -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, membership)
}
