package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/domain"
)

const searchHitsPerType = 5

type SearchRepository interface {
	History(ctx context.Context, userID uint) ([]domain.SearchEntry, error)
	RecordSelection(ctx context.Context, entry domain.SearchEntry) error
}

type SearchCatalog interface {
	SearchScooters(ctx context.Context, term string, limit int) ([]domain.ScooterModel, error)
	SearchParts(ctx context.Context, term string, limit int) ([]domain.Part, error)
	SearchTutorials(ctx context.Context, term string, limit int) ([]domain.Tutorial, error)
}

type SearchService struct {
	repo    SearchRepository
	catalog SearchCatalog
}

func NewSearchService(repo SearchRepository, catalog SearchCatalog) *SearchService {
	return &SearchService{
		repo:    repo,
		catalog: catalog,
	}
}

// SearchOutcome is either results or suggestions, never both. Suggestions
// come back when the query is too short to search.
type SearchOutcome struct {
	Results     *domain.SearchResults  `json:"results,omitempty"`
	Suggestions *domain.SuggestionView `json:"suggestions,omitempty"`
}

// Search runs a unified query across scooter models, parts and tutorials.
// A query under two characters (after trimming and prefix stripping) never
// touches the catalogue; the user gets their history and quick links
// instead.
func (s *SearchService) Search(ctx context.Context, userID uint, rawQuery string) (SearchOutcome, error) {
	scope := ParseScope(rawQuery)

	if utf8.RuneCountInString(scope.Query) < domain.SearchMinQueryLen {
		suggestions, err := s.suggestions(ctx, userID)
		if err != nil {
			return SearchOutcome{}, err
		}
		return SearchOutcome{Suggestions: &suggestions}, nil
	}

	results := domain.SearchResults{
		Models:    []domain.SearchHit{},
		Parts:     []domain.SearchHit{},
		Tutorials: []domain.SearchHit{},
	}

	if scope.Only == "" || scope.Only == domain.SearchModels {
		scooters, err := s.catalog.SearchScooters(ctx, scope.Query, searchHitsPerType)
		if err != nil {
			return SearchOutcome{}, fmt.Errorf("s.catalog.SearchScooters -> %w", err)
		}
		for _, m := range scooters {
			results.Models = append(results.Models, domain.SearchHit{
				Type:     domain.SearchModels,
				Slug:     m.Slug,
				Label:    m.Brand.Name + " " + m.Name,
				ImageURL: m.ImageURL,
			})
		}
	}

	if scope.Only == "" || scope.Only == domain.SearchParts {
		parts, err := s.catalog.SearchParts(ctx, scope.Query, searchHitsPerType)
		if err != nil {
			return SearchOutcome{}, fmt.Errorf("s.catalog.SearchParts -> %w", err)
		}
		for _, p := range parts {
			results.Parts = append(results.Parts, domain.SearchHit{
				Type:     domain.SearchParts,
				Slug:     p.Slug,
				Label:    p.Name,
				ImageURL: p.ImageURL,
			})
		}
	}

	if scope.Only == "" || scope.Only == domain.SearchTutorials {
		tutorials, err := s.catalog.SearchTutorials(ctx, scope.Query, searchHitsPerType)
		if err != nil {
			return SearchOutcome{}, fmt.Errorf("s.catalog.SearchTutorials -> %w", err)
		}
		for _, t := range tutorials {
			results.Tutorials = append(results.Tutorials, domain.SearchHit{
				Type:  domain.SearchTutorials,
				Slug:  t.Slug,
				Label: t.Title,
			})
		}
	}

	return SearchOutcome{Results: &results}, nil
}

// RecordSelection notes that the user picked a hit. A broken history never
// breaks navigation, so failures are logged and swallowed.
func (s *SearchService) RecordSelection(ctx context.Context, userID uint, hit domain.SearchHit) {
	entry := domain.SearchEntry{
		UserID: userID,
		Type:   hit.Type,
		Slug:   hit.Slug,
		Label:  hit.Label,
	}
	if err := s.repo.RecordSelection(ctx, entry); err != nil {
		zap.L().Warn("search history write failed",
			zap.Uint("user_id", userID),
			zap.String("slug", hit.Slug),
			zap.Error(err))
	}
}

func (s *SearchService) suggestions(ctx context.Context, userID uint) (domain.SuggestionView, error) {
	// Anonymous searchers have no history to look up.
	history := []domain.SearchEntry{}
	if userID != 0 {
		stored, err := s.repo.History(ctx, userID)
		if err != nil {
			return domain.SuggestionView{}, fmt.Errorf("s.repo.History -> %w", err)
		}
		if stored != nil {
			history = stored
		}
	}

	return domain.SuggestionView{
		History:      history,
		QuickActions: quickActions(),
	}, nil
}

// ParseScope strips a one-letter type prefix from the raw query. "p:" keeps
// parts only, "m:" models, "t:" tutorials; anything else searches all
// types.
func ParseScope(raw string) domain.SearchScope {
	query := strings.TrimSpace(raw)

	if len(query) >= 2 && query[1] == ':' {
		var only domain.SearchType
		switch query[0] {
		case 'p', 'P':
			only = domain.SearchParts
		case 'm', 'M':
			only = domain.SearchModels
		case 't', 'T':
			only = domain.SearchTutorials
		}
		if only != "" {
			return domain.SearchScope{
				Query: strings.TrimSpace(query[2:]),
				Only:  only,
			}
		}
	}

	return domain.SearchScope{Query: query}
}

func quickActions() []domain.QuickAction {
	return []domain.QuickAction{
		{Label: "Toutes les pièces", Route: "/parts"},
		{Label: "Les pépites", Route: "/parts?pepites=1"},
		{Label: "Trouver mon modèle", Route: "/scooters"},
		{Label: "Tutoriels", Route: "/tutorials"},
	}
}
