package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trottiparts/trottiparts-api/internal/api/handler/v1/response"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

var (
	errMissingFile     = errors.New("missing file upload")
	errMissingImageURL = errors.New("missing image url")
)

type ImportService interface {
	ImportParts(ctx context.Context, r io.Reader) (service.ImportResult, error)
}

type ImageStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

type AdminHandler struct {
	importer ImportService
	images   ImageStore
}

func NewAdminHandler(importer ImportService, images ImageStore) *AdminHandler {
	return &AdminHandler{
		importer: importer,
		images:   images,
	}
}

// HandleImportParts godoc
// @Summary      Import parts from a CSV file
// @Description  Invalid rows are skipped and reported with their row number; valid rows are
// @Description  created regardless.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file true "csv file"
// @Success      200   {object}  service.ImportResult
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      403   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /admin/parts/import [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleImportParts(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingFile))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleImportParts -> fileHeader.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer file.Close()

	result, err := h.importer.ImportParts(ctx.Request.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrEmptyImport) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyImport))
			return
		}

		err = fmt.Errorf("v1.HandleImportParts -> h.importer.ImportParts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleUploadImage godoc
// @Summary      Upload a catalogue image
// @Description  Stores the file in the image bucket and returns its public URL.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file   true  "image file"
// @Param        folder  formData  string false "target folder, defaults to parts"
// @Success      201     {object}  map[string]string
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/images [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleUploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingFile))
		return
	}

	folder := ctx.PostForm("folder")
	if folder == "" {
		folder = "parts"
	}

	file, err := fileHeader.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadImage -> fileHeader.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer file.Close()

	url, err := h.images.Upload(ctx.Request.Context(), folder, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadImage -> h.images.Upload -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"url": url})
}

// HandleDeleteImage godoc
// @Summary      Delete a catalogue image
// @Description  Removes the object behind the given public URL from the bucket.
// @Tags         admin
// @Produce      json
// @Param        url  query  string true "public image URL"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/images [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteImage(ctx *gin.Context) {
	url := ctx.Query("url")
	if url == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingImageURL))
		return
	}

	if err := h.images.Delete(ctx.Request.Context(), url); err != nil {
		err = fmt.Errorf("v1.HandleDeleteImage -> h.images.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
