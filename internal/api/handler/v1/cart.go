package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/request"
	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type CartService interface {
	GetCart(ctx context.Context, userID uint) (service.CartView, error)
	AddItem(ctx context.Context, userID, partID uint, quantity int) (service.CartView, error)
	UpdateQuantity(ctx context.Context, userID, partID uint, quantity int) (service.CartView, error)
	RemoveItem(ctx context.Context, userID, partID uint) (service.CartView, error)
	ClearCart(ctx context.Context, userID uint) error
}

type CartHandler struct {
	svc CartService
}

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{
		svc: svc,
	}
}

// HandleGetCart godoc
// @Summary      Get the authenticated user's cart with totals
// @Tags         cart
// @Produce      json
// @Success      200  {object}  service.CartView
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cart [get]
// @Security     BearerAuth
func (h *CartHandler) HandleGetCart(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	view, err := h.svc.GetCart(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCart -> h.svc.GetCart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandleAddCartItem godoc
// @Summary      Add a part to the cart
// @Description  Quantities are clamped to the part's current stock.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddCartItemRequest true "request body"
// @Success      200      {object}  service.CartView
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /cart/items [post]
// @Security     BearerAuth
func (h *CartHandler) HandleAddCartItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	view, err := h.svc.AddItem(ctx.Request.Context(), userID, req.PartID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPartNotFound))
			return
		}
		if errors.Is(err, service.ErrOutOfStock) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrOutOfStock))
			return
		}

		err = fmt.Errorf("v1.HandleAddCartItem -> h.svc.AddItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandleUpdateCartItem godoc
// @Summary      Set a cart line's quantity
// @Description  Quantity 0 removes the line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        partID   path      int                           true "part id"
// @Param        request  body      request.UpdateCartItemRequest true "request body"
// @Success      200      {object}  service.CartView
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /cart/items/{partID} [put]
// @Security     BearerAuth
func (h *CartHandler) HandleUpdateCartItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	partID, respErr := pathID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	view, err := h.svc.UpdateQuantity(ctx.Request.Context(), userID, partID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) || errors.Is(err, service.ErrPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateCartItem -> h.svc.UpdateQuantity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandleRemoveCartItem godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        partID  path      int true "part id"
// @Success      200     {object}  service.CartView
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /cart/items/{partID} [delete]
// @Security     BearerAuth
func (h *CartHandler) HandleRemoveCartItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	partID, respErr := pathID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	view, err := h.svc.RemoveItem(ctx.Request.Context(), userID, partID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCartItemNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleRemoveCartItem -> h.svc.RemoveItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandleClearCart godoc
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cart [delete]
// @Security     BearerAuth
func (h *CartHandler) HandleClearCart(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.ClearCart(ctx.Request.Context(), userID); err != nil {
		err = fmt.Errorf("v1.HandleClearCart -> h.svc.ClearCart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
