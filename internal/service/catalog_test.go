package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

// fakeCatalogRepo embeds the interface so only the methods a test touches
// need implementing.
type fakeCatalogRepo struct {
	service.CatalogRepository

	brands     []domain.Brand
	parts      []domain.Part
	brandReads int
	partReads  int
}

func (f *fakeCatalogRepo) FindBrands(_ context.Context) ([]domain.Brand, error) {
	f.brandReads++
	return f.brands, nil
}

func (f *fakeCatalogRepo) CreateBrand(_ context.Context, brand domain.Brand) (domain.Brand, error) {
	brand.ID = uint(len(f.brands) + 1)
	f.brands = append(f.brands, brand)
	return brand, nil
}

func (f *fakeCatalogRepo) FindParts(_ context.Context, _ domain.PartFilter) ([]domain.Part, error) {
	f.partReads++
	return f.parts, nil
}

func TestCatalogGetBrands_CacheAside(t *testing.T) {
	repo := &fakeCatalogRepo{
		brands: []domain.Brand{{ID: 1, Name: "Xiaomi", Slug: "xiaomi"}},
	}
	svc := service.NewCatalogService(repo, newFakeCache())

	first, err := svc.GetBrands(context.Background())
	require.NoError(t, err)
	second, err := svc.GetBrands(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.brandReads, "second read must come from the cache")
}

func TestCatalogCreateBrand_InvalidatesListing(t *testing.T) {
	repo := &fakeCatalogRepo{
		brands: []domain.Brand{{ID: 1, Name: "Xiaomi", Slug: "xiaomi"}},
	}
	svc := service.NewCatalogService(repo, newFakeCache())

	_, err := svc.GetBrands(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateBrand(context.Background(), domain.Brand{Name: "Ninebot", Slug: "ninebot"})
	require.NoError(t, err)

	brands, err := svc.GetBrands(context.Background())
	require.NoError(t, err)

	assert.Len(t, brands, 2)
	assert.Equal(t, 2, repo.brandReads, "the listing was re-read after invalidation")
}

func TestCatalogGetParts_DistinctFiltersCacheSeparately(t *testing.T) {
	repo := &fakeCatalogRepo{
		parts: []domain.Part{{ID: 1, Name: "Frein avant", Slug: "frein-avant"}},
	}
	svc := service.NewCatalogService(repo, newFakeCache())

	_, err := svc.GetParts(context.Background(), domain.PartFilter{})
	require.NoError(t, err)
	_, err = svc.GetParts(context.Background(), domain.PartFilter{CategorySlug: "freinage"})
	require.NoError(t, err)
	_, err = svc.GetParts(context.Background(), domain.PartFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.partReads, "identical filters share a cache entry, distinct ones do not")
}
