package v1_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/trottiparts/trottiparts-api/internal/api/handler/v1"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeImages struct {
	deleted []string
}

func (f *fakeImages) Upload(_ context.Context, folder, filename, _ string, _ io.Reader) (string, error) {
	return "https://img.test/" + folder + "/" + filename, nil
}

func (f *fakeImages) Delete(_ context.Context, publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return nil
}

type fakeImporter struct{}

func (fakeImporter) ImportParts(_ context.Context, _ io.Reader) (service.ImportResult, error) {
	return service.ImportResult{}, nil
}

func TestHandleDeleteImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	images := &fakeImages{}
	handler := v1.NewAdminHandler(fakeImporter{}, images)

	router := gin.New()
	router.DELETE("/admin/images", handler.HandleDeleteImage)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/admin/images?url=https://img.test/parts/frein.jpg", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, images.deleted, 1)
	assert.Equal(t, "https://img.test/parts/frein.jpg", images.deleted[0])
}

func TestHandleDeleteImage_MissingURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	images := &fakeImages{}
	handler := v1.NewAdminHandler(fakeImporter{}, images)

	router := gin.New()
	router.DELETE("/admin/images", handler.HandleDeleteImage)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/images", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, images.deleted)
}
