package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	v1 "github.com/trottiparts/trottiparts-api/internal/api/handler/v1"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeSearchService struct {
	lastUserID uint
}

func (f *fakeSearchService) Search(_ context.Context, userID uint, _ string) (service.SearchOutcome, error) {
	f.lastUserID = userID
	return service.SearchOutcome{
		Suggestions: &domain.SuggestionView{History: []domain.SearchEntry{}},
	}, nil
}

func (f *fakeSearchService) RecordSelection(_ context.Context, _ uint, _ domain.SearchHit) {}

func TestHandleSearch_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeSearchService{}
	handler := v1.NewSearchHandler(svc)

	// No JWT middleware in front; the route is public.
	router := gin.New()
	router.GET("/search", handler.HandleSearch)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search?q=xiaomi", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, svc.lastUserID)
}
