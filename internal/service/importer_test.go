package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeImporterRepo struct {
	categories []domain.Category
	created    []domain.Part
}

func (f *fakeImporterRepo) FindCategories(_ context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeImporterRepo) CreatePart(_ context.Context, part domain.Part) (domain.Part, error) {
	for _, existing := range f.created {
		if existing.Slug == part.Slug {
			return domain.Part{}, service.ErrSlugExists
		}
	}
	part.ID = uint(len(f.created) + 1)
	f.created = append(f.created, part)
	return part, nil
}

func newImporterFixture() (*service.ImportService, *fakeImporterRepo) {
	repo := &fakeImporterRepo{
		categories: []domain.Category{
			{ID: 1, Name: "Freinage", Slug: "freinage"},
			{ID: 2, Name: "Batteries", Slug: "batteries"},
		},
	}
	return service.NewImportService(repo, newFakeCache()), repo
}

func TestImportParts(t *testing.T) {
	svc, repo := newImporterFixture()

	csv := strings.Join([]string{
		"name,category,price,stock,install_difficulty,install_minutes,install_tools,pepite",
		"Frein avant,Freinage,19.99,12,facile,15,Clé Allen 4mm,1",
		"Batterie 36V,batteries,149.90,3,difficile,60,Tournevis,0",
	}, "\n")

	result, err := svc.ImportParts(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	require.Len(t, repo.created, 2)
	assert.Equal(t, "frein-avant", repo.created[0].Slug)
	assert.Equal(t, int64(1999), repo.created[0].PriceCents)
	assert.Equal(t, uint(1), repo.created[0].CategoryID)
	assert.True(t, repo.created[0].Pepite)
	assert.Equal(t, int64(14990), repo.created[1].PriceCents)
	assert.Equal(t, uint(2), repo.created[1].CategoryID)
}

func TestImportParts_PartialSuccess(t *testing.T) {
	svc, repo := newImporterFixture()

	csv := strings.Join([]string{
		"name,category,price,stock",
		"Frein avant,Freinage,19.99,12",
		"Poignée gauche,Freinage,9.99,5",
		",Freinage,4.99,2",
		"Garde-boue,Carrosserie,12.50,8",
	}, "\n")

	result, err := svc.ImportParts(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Reason, "missing name")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Reason, "unknown category")

	assert.Len(t, repo.created, 2)
}

func TestImportParts_CategoryMatching(t *testing.T) {
	svc, repo := newImporterFixture()

	// Case-insensitive name match first, slugified fallback second.
	csv := strings.Join([]string{
		"name,category,price,stock",
		"Frein arrière,FREINAGE,24.99,4",
		"Chargeur 42V,Batteries,29.99,6",
	}, "\n")

	result, err := svc.ImportParts(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, uint(1), repo.created[0].CategoryID)
	assert.Equal(t, uint(2), repo.created[1].CategoryID)
}

func TestImportParts_FrenchDecimalComma(t *testing.T) {
	svc, repo := newImporterFixture()

	csv := "name,category,price,stock\nFrein avant,Freinage,\"19,99\",12\n"

	result, err := svc.ImportParts(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, int64(1999), repo.created[0].PriceCents)
}

func TestImportParts_DuplicateName(t *testing.T) {
	svc, _ := newImporterFixture()

	csv := strings.Join([]string{
		"name,category,price,stock",
		"Frein avant,Freinage,19.99,12",
		"Frein avant,Freinage,21.00,3",
	}, "\n")

	result, err := svc.ImportParts(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Reason, "already exists")
}

func TestImportParts_InvalidNumbers(t *testing.T) {
	svc, _ := newImporterFixture()

	csv := strings.Join([]string{
		"name,category,price,stock",
		"Frein avant,Freinage,gratuit,12",
		"Poignée,Freinage,9.99,beaucoup",
	}, "\n")

	result, err := svc.ImportParts(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Zero(t, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Reason, "invalid price")
	assert.Contains(t, result.Errors[1].Reason, "invalid stock")
}

func TestImportParts_EmptyFile(t *testing.T) {
	svc, _ := newImporterFixture()

	_, err := svc.ImportParts(context.Background(), strings.NewReader("name,category,price,stock\n"))
	assert.ErrorIs(t, err, service.ErrEmptyImport)
}
