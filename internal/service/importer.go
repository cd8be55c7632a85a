package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/cache"
	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/pkg/slug"
)

var ErrEmptyImport = errors.New("import file has no data rows")

// csv columns, in order. price is in euros with an optional decimal part
// and becomes cents on import.
var importColumns = []string{
	"name", "category", "price", "stock",
	"install_difficulty", "install_minutes", "install_tools", "pepite",
}

// ImportRowError pins a rejected row to its position in the uploaded file.
// Row numbers are 1-based and count data rows, not the header.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e ImportRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ImportResult reports a partial-success import: every valid row was
// created even when others failed.
type ImportResult struct {
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

type ImporterRepository interface {
	FindCategories(ctx context.Context) ([]domain.Category, error)
	CreatePart(ctx context.Context, part domain.Part) (domain.Part, error)
}

type ImportService struct {
	repo  ImporterRepository
	cache Cache
}

func NewImportService(repo ImporterRepository, cache Cache) *ImportService {
	return &ImportService{
		repo:  repo,
		cache: cache,
	}
}

// ImportParts reads a CSV of parts and creates each valid row. Invalid rows
// are skipped and reported; they never abort the rows around them.
func (s *ImportService) ImportParts(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("reader.Read header -> %w", err)
	}
	columns := columnIndex(header)

	categories, err := s.repo.FindCategories(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("s.repo.FindCategories -> %w", err)
	}

	var result ImportResult
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		result.Total++
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: result.Total, Reason: "malformed csv row"})
			continue
		}

		part, rowErr := parsePartRow(record, columns, categories)
		if rowErr != "" {
			result.Errors = append(result.Errors, ImportRowError{Row: result.Total, Reason: rowErr})
			continue
		}

		if _, err := s.repo.CreatePart(ctx, part); err != nil {
			reason := "database rejected the row"
			if errors.Is(err, ErrSlugExists) {
				reason = "a part with this name already exists"
			}
			result.Errors = append(result.Errors, ImportRowError{Row: result.Total, Reason: reason})
			continue
		}
		result.Imported++
	}

	if result.Total == 0 {
		return ImportResult{}, ErrEmptyImport
	}

	if result.Imported > 0 {
		s.invalidate(ctx)
	}
	return result, nil
}

func (s *ImportService) invalidate(ctx context.Context) {
	keys := []string{cache.Key("parts"), cache.Key("parts", "pepites")}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		zap.L().Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func parsePartRow(record []string, columns map[string]int, categories []domain.Category) (domain.Part, string) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("name")
	if name == "" {
		return domain.Part{}, "missing name"
	}

	categoryName := field("category")
	if categoryName == "" {
		return domain.Part{}, "missing category"
	}
	category, ok := matchCategory(categories, categoryName)
	if !ok {
		return domain.Part{}, fmt.Sprintf("unknown category %q", categoryName)
	}

	priceCents, err := parseEuros(field("price"))
	if err != nil {
		return domain.Part{}, "invalid price"
	}

	stock, err := strconv.Atoi(field("stock"))
	if err != nil || stock < 0 {
		return domain.Part{}, "invalid stock"
	}

	part := domain.Part{
		Name:              name,
		Slug:              slug.Make(name),
		CategoryID:        category.ID,
		PriceCents:        priceCents,
		StockQuantity:     stock,
		InstallDifficulty: field("install_difficulty"),
		InstallTools:      field("install_tools"),
		Pepite:            parseFlag(field("pepite")),
	}
	if minutes := field("install_minutes"); minutes != "" {
		if m, err := strconv.Atoi(minutes); err == nil {
			part.InstallMinutes = m
		}
	}
	return part, ""
}

// matchCategory resolves a CSV category reference: exact case-insensitive
// name first, slugified form second. When two categories slugify the same,
// the first one wins.
func matchCategory(categories []domain.Category, reference string) (domain.Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, reference) {
			return c, true
		}
	}

	wanted := slug.Make(reference)
	for _, c := range categories {
		if c.Slug == wanted {
			return c, true
		}
	}
	return domain.Category{}, false
}

// parseEuros converts "19,99" or "19.99" (or a bare "20") to cents.
func parseEuros(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("empty price")
	}
	normalized := strings.ReplaceAll(raw, ",", ".")

	euros, err := strconv.ParseFloat(normalized, 64)
	if err != nil || euros < 0 {
		return 0, fmt.Errorf("bad price %q", raw)
	}
	return int64(euros*100 + 0.5), nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "oui", "yes":
		return true
	}
	return false
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(importColumns))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}
