package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type fakeSearchRepo struct {
	history      []domain.SearchEntry
	historyCalls int
	recorded     []domain.SearchEntry
}

func (f *fakeSearchRepo) History(_ context.Context, _ uint) ([]domain.SearchEntry, error) {
	f.historyCalls++
	return f.history, nil
}

func (f *fakeSearchRepo) RecordSelection(_ context.Context, entry domain.SearchEntry) error {
	f.recorded = append(f.recorded, entry)
	return nil
}

type countingCatalog struct {
	scooterCalls  int
	partCalls     int
	tutorialCalls int

	scooters  []domain.ScooterModel
	parts     []domain.Part
	tutorials []domain.Tutorial
}

func (c *countingCatalog) SearchScooters(_ context.Context, _ string, _ int) ([]domain.ScooterModel, error) {
	c.scooterCalls++
	return c.scooters, nil
}

func (c *countingCatalog) SearchParts(_ context.Context, _ string, _ int) ([]domain.Part, error) {
	c.partCalls++
	return c.parts, nil
}

func (c *countingCatalog) SearchTutorials(_ context.Context, _ string, _ int) ([]domain.Tutorial, error) {
	c.tutorialCalls++
	return c.tutorials, nil
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantQuery string
		wantOnly  domain.SearchType
	}{
		{"plain", "guidon", "guidon", ""},
		{"parts prefix", "p:frein", "frein", domain.SearchParts},
		{"models prefix", "m: xiaomi", "xiaomi", domain.SearchModels},
		{"tutorials prefix", "T:chambre", "chambre", domain.SearchTutorials},
		{"unknown prefix stays literal", "x:abc", "x:abc", ""},
		{"trimmed", "  pneu  ", "pneu", ""},
		{"colon alone", "p:", "", domain.SearchParts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := service.ParseScope(tt.raw)
			assert.Equal(t, tt.wantQuery, scope.Query)
			assert.Equal(t, tt.wantOnly, scope.Only)
		})
	}
}

func TestSearch_AnonymousGetsQuickActionsWithoutHistory(t *testing.T) {
	repo := &fakeSearchRepo{
		history: []domain.SearchEntry{{Slug: "xiaomi-m365", Label: "Xiaomi M365"}},
	}
	svc := service.NewSearchService(repo, &countingCatalog{})

	outcome, err := svc.Search(context.Background(), 0, "a")
	require.NoError(t, err)
	require.NotNil(t, outcome.Suggestions)
	assert.Empty(t, outcome.Suggestions.History)
	assert.NotEmpty(t, outcome.Suggestions.QuickActions)
	assert.Zero(t, repo.historyCalls)
}

func TestSearch_ShortQueryNeverHitsCatalog(t *testing.T) {
	repo := &fakeSearchRepo{
		history: []domain.SearchEntry{{Slug: "xiaomi-m365", Label: "Xiaomi M365"}},
	}
	catalog := &countingCatalog{}
	svc := service.NewSearchService(repo, catalog)

	for _, q := range []string{"", "a", "é", "p:x", "   "} {
		outcome, err := svc.Search(context.Background(), 1, q)
		require.NoError(t, err)

		require.NotNil(t, outcome.Suggestions, "query %q", q)
		assert.Nil(t, outcome.Results, "query %q", q)
		assert.Len(t, outcome.Suggestions.History, 1)
		assert.NotEmpty(t, outcome.Suggestions.QuickActions)
	}

	assert.Zero(t, catalog.scooterCalls)
	assert.Zero(t, catalog.partCalls)
	assert.Zero(t, catalog.tutorialCalls)
}

func TestSearch_QueriesAllTypesWithoutPrefix(t *testing.T) {
	catalog := &countingCatalog{
		scooters:  []domain.ScooterModel{{Slug: "m365", Name: "M365", Brand: domain.Brand{Name: "Xiaomi"}}},
		parts:     []domain.Part{{Slug: "frein-avant", Name: "Frein avant"}},
		tutorials: []domain.Tutorial{{Slug: "changer-pneu", Title: "Changer un pneu"}},
	}
	svc := service.NewSearchService(&fakeSearchRepo{}, catalog)

	outcome, err := svc.Search(context.Background(), 1, "xi")
	require.NoError(t, err)
	require.NotNil(t, outcome.Results)

	assert.Equal(t, 1, catalog.scooterCalls)
	assert.Equal(t, 1, catalog.partCalls)
	assert.Equal(t, 1, catalog.tutorialCalls)

	require.Len(t, outcome.Results.Models, 1)
	assert.Equal(t, "Xiaomi M365", outcome.Results.Models[0].Label)
	require.Len(t, outcome.Results.Parts, 1)
	require.Len(t, outcome.Results.Tutorials, 1)
}

func TestSearch_PrefixRestrictsToOneType(t *testing.T) {
	catalog := &countingCatalog{
		parts: []domain.Part{{Slug: "frein-avant", Name: "Frein avant"}},
	}
	svc := service.NewSearchService(&fakeSearchRepo{}, catalog)

	outcome, err := svc.Search(context.Background(), 1, "p:frein")
	require.NoError(t, err)
	require.NotNil(t, outcome.Results)

	assert.Zero(t, catalog.scooterCalls)
	assert.Equal(t, 1, catalog.partCalls)
	assert.Zero(t, catalog.tutorialCalls)

	assert.Empty(t, outcome.Results.Models)
	assert.Len(t, outcome.Results.Parts, 1)
	assert.Empty(t, outcome.Results.Tutorials)
}

func TestRecordSelection(t *testing.T) {
	repo := &fakeSearchRepo{}
	svc := service.NewSearchService(repo, &countingCatalog{})

	svc.RecordSelection(context.Background(), 7, domain.SearchHit{
		Type:  domain.SearchParts,
		Slug:  "frein-avant",
		Label: "Frein avant",
	})

	require.Len(t, repo.recorded, 1)
	assert.Equal(t, uint(7), repo.recorded[0].UserID)
	assert.Equal(t, domain.SearchParts, repo.recorded[0].Type)
}
