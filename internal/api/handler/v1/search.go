package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/request"
	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/api/middleware"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type SearchService interface {
	Search(ctx context.Context, userID uint, rawQuery string) (service.SearchOutcome, error)
	RecordSelection(ctx context.Context, userID uint, hit domain.SearchHit)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{
		svc: svc,
	}
}

// HandleSearch godoc
// @Summary      Unified search across models, parts and tutorials
// @Description  Prefix the query with "p:", "m:" or "t:" to restrict it to one type.
// @Description  Queries under 2 characters return history and quick actions instead.
// @Tags         search
// @Produce      json
// @Param        q  query     string false "search query"
// @Success      200  {object}  service.SearchOutcome
// @Failure      500  {object}  response.Err
// @Router       /search [get]
func (h *SearchHandler) HandleSearch(ctx *gin.Context) {
	// The route is public; without a token the history is simply empty.
	userID, _ := ctx.Value(middleware.ContextKeyUserID).(uint)

	outcome, err := h.svc.Search(ctx.Request.Context(), userID, ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSearch -> h.svc.Search -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, outcome)
}

// HandleRecordSelection godoc
// @Summary      Record that the user picked a search hit
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request  body  request.SearchSelectionRequest true "request body"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Router       /search/history [post]
// @Security     BearerAuth
func (h *SearchHandler) HandleRecordSelection(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SearchSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.svc.RecordSelection(ctx.Request.Context(), userID, domain.SearchHit{
		Type:  domain.SearchType(req.Type),
		Slug:  req.Slug,
		Label: req.Label,
	})

	ctx.Status(http.StatusNoContent)
}
