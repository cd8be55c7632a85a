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

type OrderService interface {
	Checkout(ctx context.Context, userID uint, input service.CheckoutInput) (domain.Order, error)
	GetOrders(ctx context.Context, userID uint) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID uint) (domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, to domain.OrderStatus) (domain.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCheckout godoc
// @Summary      Turn the cart into an order
// @Description  Creates the order, decrements stock and empties the cart in one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckoutRequest true "request body"
// @Success      201      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders [post]
// @Security     BearerAuth
func (h *OrderHandler) HandleCheckout(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.Checkout(ctx.Request.Context(), userID, service.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		ShippingLine:  req.ShippingLine,
		City:          req.City,
		PostalCode:    req.PostalCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyCart))
			return
		}
		if errors.Is(err, service.ErrInsufficientStock) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrInsufficientStock))
			return
		}

		err = fmt.Errorf("v1.HandleCheckout -> h.svc.Checkout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGetOrders godoc
// @Summary      List the authenticated user's orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /orders [get]
// @Security     BearerAuth
func (h *OrderHandler) HandleGetOrders(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orders, err := h.svc.GetOrders(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOrders -> h.svc.GetOrders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleGetOrder godoc
// @Summary      Get one of the authenticated user's orders
// @Tags         orders
// @Produce      json
// @Param        orderID  path      int true "order id"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID} [get]
// @Security     BearerAuth
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orderID, respErr := pathID(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleListAllOrders godoc
// @Summary      List every order
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/orders [get]
// @Security     BearerAuth
func (h *OrderHandler) HandleListAllOrders(ctx *gin.Context) {
	orders, err := h.svc.ListAllOrders(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllOrders -> h.svc.ListAllOrders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleUpdateOrderStatus godoc
// @Summary      Change an order's status
// @Description  Delivered and cancelled orders are final.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        orderID  path      int                              true "order id"
// @Param        request  body      request.UpdateOrderStatusRequest true "request body"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/orders/{orderID}/status [put]
// @Security     BearerAuth
func (h *OrderHandler) HandleUpdateOrderStatus(ctx *gin.Context) {
	orderID, respErr := pathID(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.UpdateStatus(ctx.Request.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrOrderNotFound))
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatus))
			return
		}
		if errors.Is(err, service.ErrStatusLocked) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrStatusLocked))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrderStatus -> h.svc.UpdateStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, order)
}
