package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/request"
	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/pkg/slug"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

var errInvalidID = errors.New("invalid id")

type CatalogService interface {
	GetBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, slug string) (domain.Brand, error)
	CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	DeleteBrand(ctx context.Context, id uint) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetScooters(ctx context.Context, brandSlug string) ([]domain.ScooterModel, error)
	GetScooter(ctx context.Context, slug string) (domain.ScooterModel, error)
	CreateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error)
	UpdateScooter(ctx context.Context, scooter domain.ScooterModel) (domain.ScooterModel, error)
	DeleteScooter(ctx context.Context, id uint) error
	GetParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error)
	GetPart(ctx context.Context, slug string) (domain.Part, error)
	CreatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	DeletePart(ctx context.Context, id uint) error
	GetTutorials(ctx context.Context, limit int) ([]domain.Tutorial, error)
	GetTutorial(ctx context.Context, slug string) (domain.Tutorial, error)
	CheckCompatibility(ctx context.Context, partID, scooterModelID uint) (bool, error)
	LinkCompatibility(ctx context.Context, partID, scooterModelID uint) error
	UnlinkCompatibility(ctx context.Context, partID, scooterModelID uint) error
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleGetBrands godoc
// @Summary      List all brands
// @Tags         catalogue
// @Produce      json
// @Success      200  {array}   domain.Brand
// @Failure      500  {object}  response.Err
// @Router       /brands [get]
func (h *CatalogHandler) HandleGetBrands(ctx *gin.Context) {
	brands, err := h.svc.GetBrands(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBrands -> h.svc.GetBrands -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, brands)
}

// HandleGetBrand godoc
// @Summary      Get one brand by slug
// @Tags         catalogue
// @Produce      json
// @Param        slug  path      string true "brand slug"
// @Success      200   {object}  domain.Brand
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /brands/{slug} [get]
func (h *CatalogHandler) HandleGetBrand(ctx *gin.Context) {
	brand, err := h.svc.GetBrand(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBrandNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetBrand -> h.svc.GetBrand -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, brand)
}

// HandleGetCategories godoc
// @Summary      List all part categories
// @Tags         catalogue
// @Produce      json
// @Success      200  {array}   domain.Category
// @Failure      500  {object}  response.Err
// @Router       /categories [get]
func (h *CatalogHandler) HandleGetCategories(ctx *gin.Context) {
	categories, err := h.svc.GetCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCategories -> h.svc.GetCategories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleGetScooters godoc
// @Summary      List scooter models, optionally for one brand
// @Tags         catalogue
// @Produce      json
// @Param        brand  query     string false "brand slug"
// @Success      200    {array}   domain.ScooterModel
// @Failure      500    {object}  response.Err
// @Router       /scooters [get]
func (h *CatalogHandler) HandleGetScooters(ctx *gin.Context) {
	scooters, err := h.svc.GetScooters(ctx.Request.Context(), ctx.Query("brand"))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetScooters -> h.svc.GetScooters -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, scooters)
}

// HandleGetScooter godoc
// @Summary      Get one scooter model by slug
// @Tags         catalogue
// @Produce      json
// @Param        slug  path      string true "scooter slug"
// @Success      200   {object}  domain.ScooterModel
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /scooters/{slug} [get]
func (h *CatalogHandler) HandleGetScooter(ctx *gin.Context) {
	scooter, err := h.svc.GetScooter(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrScooterNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrScooterNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetScooter -> h.svc.GetScooter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, scooter)
}

// HandleGetParts godoc
// @Summary      List parts
// @Description  Filters: category slug, compatible scooter slug, pépites flag, limit.
// @Tags         catalogue
// @Produce      json
// @Param        category  query     string false "category slug"
// @Param        scooter   query     string false "compatible scooter slug"
// @Param        pepites   query     bool   false "pépites only"
// @Param        limit     query     int    false "max results"
// @Success      200       {array}   domain.Part
// @Failure      500       {object}  response.Err
// @Router       /parts [get]
func (h *CatalogHandler) HandleGetParts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	filter := domain.PartFilter{
		CategorySlug: ctx.Query("category"),
		ScooterSlug:  ctx.Query("scooter"),
		PepitesOnly:  ctx.Query("pepites") == "1" || ctx.Query("pepites") == "true",
		Limit:        limit,
	}

	parts, err := h.svc.GetParts(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetParts -> h.svc.GetParts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, parts)
}

// HandleGetPart godoc
// @Summary      Get one part by slug
// @Tags         catalogue
// @Produce      json
// @Param        slug  path      string true "part slug"
// @Success      200   {object}  domain.Part
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /parts/{slug} [get]
func (h *CatalogHandler) HandleGetPart(ctx *gin.Context) {
	part, err := h.svc.GetPart(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetPart -> h.svc.GetPart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, part)
}

// HandleGetTutorials godoc
// @Summary      List tutorials
// @Tags         catalogue
// @Produce      json
// @Param        limit  query     int false "max results"
// @Success      200    {array}   domain.Tutorial
// @Failure      500    {object}  response.Err
// @Router       /tutorials [get]
func (h *CatalogHandler) HandleGetTutorials(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	tutorials, err := h.svc.GetTutorials(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTutorials -> h.svc.GetTutorials -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tutorials)
}

// HandleGetTutorial godoc
// @Summary      Get one tutorial by slug
// @Tags         catalogue
// @Produce      json
// @Param        slug  path      string true "tutorial slug"
// @Success      200   {object}  domain.Tutorial
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /tutorials/{slug} [get]
func (h *CatalogHandler) HandleGetTutorial(ctx *gin.Context) {
	tutorial, err := h.svc.GetTutorial(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTutorialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTutorialNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetTutorial -> h.svc.GetTutorial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tutorial)
}

// HandleCheckCompatibility godoc
// @Summary      Check whether a part fits a scooter model
// @Tags         catalogue
// @Produce      json
// @Param        part_id           query     int true "part id"
// @Param        scooter_model_id  query     int true "scooter model id"
// @Success      200               {object}  map[string]bool
// @Failure      400               {object}  response.Err
// @Failure      500               {object}  response.Err
// @Router       /compatibility [get]
func (h *CatalogHandler) HandleCheckCompatibility(ctx *gin.Context) {
	partID, err1 := strconv.ParseUint(ctx.Query("part_id"), 10, 32)
	scooterID, err2 := strconv.ParseUint(ctx.Query("scooter_model_id"), 10, 32)
	if err1 != nil || err2 != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidID))
		return
	}

	compatible, err := h.svc.CheckCompatibility(ctx.Request.Context(), uint(partID), uint(scooterID))
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckCompatibility -> h.svc.CheckCompatibility -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"compatible": compatible})
}

// HandleCreateBrand godoc
// @Summary      Create a brand
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.BrandRequest true "request body"
// @Success      201      {object}  domain.Brand
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/brands [post]
// @Security     BearerAuth
func (h *CatalogHandler) HandleCreateBrand(ctx *gin.Context) {
	var req request.BrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	brand, err := h.svc.CreateBrand(ctx.Request.Context(), domain.Brand{
		Name:    req.Name,
		Slug:    slug.Make(req.Name),
		LogoURL: req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrSlugExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateBrand -> h.svc.CreateBrand -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, brand)
}

// HandleUpdateBrand godoc
// @Summary      Update a brand
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        brandID  path      int                  true "brand id"
// @Param        request  body      request.BrandRequest true "request body"
// @Success      200      {object}  domain.Brand
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/brands/{brandID} [put]
// @Security     BearerAuth
func (h *CatalogHandler) HandleUpdateBrand(ctx *gin.Context) {
	id, respErr := pathID(ctx, "brandID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	brand, err := h.svc.UpdateBrand(ctx.Request.Context(), domain.Brand{
		ID:      id,
		Name:    req.Name,
		Slug:    slug.Make(req.Name),
		LogoURL: req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBrandNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateBrand -> h.svc.UpdateBrand -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, brand)
}

// HandleDeleteBrand godoc
// @Summary      Delete a brand
// @Tags         admin
// @Produce      json
// @Param        brandID  path  int true "brand id"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/brands/{brandID} [delete]
// @Security     BearerAuth
func (h *CatalogHandler) HandleDeleteBrand(ctx *gin.Context) {
	id, respErr := pathID(ctx, "brandID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteBrand(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBrandNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteBrand -> h.svc.DeleteBrand -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateScooter godoc
// @Summary      Create a scooter model
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.ScooterRequest true "request body"
// @Success      201      {object}  domain.ScooterModel
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/scooters [post]
// @Security     BearerAuth
func (h *CatalogHandler) HandleCreateScooter(ctx *gin.Context) {
	var req request.ScooterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	scooter, err := h.svc.CreateScooter(ctx.Request.Context(), scooterFromRequest(0, req))
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrSlugExists))
			return
		}
		if errors.Is(err, service.ErrBrandNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrBrandNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleCreateScooter -> h.svc.CreateScooter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, scooter)
}

// HandleUpdateScooter godoc
// @Summary      Update a scooter model
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        scooterID  path      int                    true "scooter id"
// @Param        request    body      request.ScooterRequest true "request body"
// @Success      200        {object}  domain.ScooterModel
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/scooters/{scooterID} [put]
// @Security     BearerAuth
func (h *CatalogHandler) HandleUpdateScooter(ctx *gin.Context) {
	id, respErr := pathID(ctx, "scooterID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ScooterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	scooter, err := h.svc.UpdateScooter(ctx.Request.Context(), scooterFromRequest(id, req))
	if err != nil {
		if errors.Is(err, service.ErrScooterNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrScooterNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateScooter -> h.svc.UpdateScooter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, scooter)
}

// HandleDeleteScooter godoc
// @Summary      Delete a scooter model
// @Tags         admin
// @Produce      json
// @Param        scooterID  path  int true "scooter id"
// @Success      204
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/scooters/{scooterID} [delete]
// @Security     BearerAuth
func (h *CatalogHandler) HandleDeleteScooter(ctx *gin.Context) {
	id, respErr := pathID(ctx, "scooterID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteScooter(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrScooterNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrScooterNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteScooter -> h.svc.DeleteScooter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreatePart godoc
// @Summary      Create a part
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.PartRequest true "request body"
// @Success      201      {object}  domain.Part
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/parts [post]
// @Security     BearerAuth
func (h *CatalogHandler) HandleCreatePart(ctx *gin.Context) {
	var req request.PartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part, err := h.svc.CreatePart(ctx.Request.Context(), partFromRequest(0, req))
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrSlugExists))
			return
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePart -> h.svc.CreatePart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, part)
}

// HandleUpdatePart godoc
// @Summary      Update a part
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        partID   path      int                 true "part id"
// @Param        request  body      request.PartRequest true "request body"
// @Success      200      {object}  domain.Part
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/parts/{partID} [put]
// @Security     BearerAuth
func (h *CatalogHandler) HandleUpdatePart(ctx *gin.Context) {
	id, respErr := pathID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part, err := h.svc.UpdatePart(ctx.Request.Context(), partFromRequest(id, req))
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePart -> h.svc.UpdatePart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, part)
}

// HandleDeletePart godoc
// @Summary      Delete a part
// @Tags         admin
// @Produce      json
// @Param        partID  path  int true "part id"
// @Success      204
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/parts/{partID} [delete]
// @Security     BearerAuth
func (h *CatalogHandler) HandleDeletePart(ctx *gin.Context) {
	id, respErr := pathID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeletePart(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPartNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeletePart -> h.svc.DeletePart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleLinkCompatibility godoc
// @Summary      Declare that a part fits a scooter model
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  request.CompatibilityRequest true "request body"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/compatibility [post]
// @Security     BearerAuth
func (h *CatalogHandler) HandleLinkCompatibility(ctx *gin.Context) {
	var req request.CompatibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.LinkCompatibility(ctx.Request.Context(), req.PartID, req.ScooterModelID); err != nil {
		if errors.Is(err, service.ErrPartNotFound) || errors.Is(err, service.ErrScooterNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleLinkCompatibility -> h.svc.LinkCompatibility -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUnlinkCompatibility godoc
// @Summary      Remove a part/scooter compatibility
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  request.CompatibilityRequest true "request body"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/compatibility [delete]
// @Security     BearerAuth
func (h *CatalogHandler) HandleUnlinkCompatibility(ctx *gin.Context) {
	var req request.CompatibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.UnlinkCompatibility(ctx.Request.Context(), req.PartID, req.ScooterModelID); err != nil {
		err = fmt.Errorf("v1.HandleUnlinkCompatibility -> h.svc.UnlinkCompatibility -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func scooterFromRequest(id uint, req request.ScooterRequest) domain.ScooterModel {
	return domain.ScooterModel{
		ID:           id,
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		BrandID:      req.BrandID,
		Voltage:      req.Voltage,
		Amperage:     req.Amperage,
		Wattage:      req.Wattage,
		MaxSpeedKMH:  req.MaxSpeedKMH,
		RangeKM:      req.RangeKM,
		TireSize:     req.TireSize,
		ImageURL:     req.ImageURL,
		AffiliateURL: req.AffiliateURL,
	}
}

func partFromRequest(id uint, req request.PartRequest) domain.Part {
	return domain.Part{
		ID:                id,
		Name:              req.Name,
		Slug:              slug.Make(req.Name),
		CategoryID:        req.CategoryID,
		PriceCents:        req.PriceCents,
		StockQuantity:     req.StockQuantity,
		InstallDifficulty: req.InstallDifficulty,
		InstallMinutes:    req.InstallMinutes,
		InstallTools:      req.InstallTools,
		TechnicalSpecs:    req.TechnicalSpecs,
		Pepite:            req.Pepite,
		ImageURL:          req.ImageURL,
	}
}

// pathID parses a numeric path parameter.
func pathID(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(errInvalidID)
	}

	return uint(id), nil
}
