package repository

import (
	"context"
	"fmt"

	"github.com/trottiparts/trottiparts-api/internal/domain"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

type SearchDAO interface {
	FindHistory(ctx context.Context, userID uint, limit int) ([]dao.SearchEntry, error)
	RecordSelection(ctx context.Context, entry dao.SearchEntry, cap int) error
}

type SearchRepository struct {
	dao SearchDAO
}

func NewSearchRepository(dao SearchDAO) *SearchRepository {
	return &SearchRepository{
		dao: dao,
	}
}

func (r *SearchRepository) History(ctx context.Context, userID uint) ([]domain.SearchEntry, error) {
	entries, err := r.dao.FindHistory(ctx, userID, domain.SearchHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindHistory -> %w", err)
	}

	out := make([]domain.SearchEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.SearchEntry{
			ID:        e.ID,
			UserID:    e.UserID,
			Type:      domain.SearchType(e.Type),
			Slug:      e.Slug,
			Label:     e.Label,
			CreatedAt: e.CreatedAt,
		}
	}
	return out, nil
}

func (r *SearchRepository) RecordSelection(ctx context.Context, entry domain.SearchEntry) error {
	err := r.dao.RecordSelection(ctx, dao.SearchEntry{
		UserID: entry.UserID,
		Type:   string(entry.Type),
		Slug:   entry.Slug,
		Label:  entry.Label,
	}, domain.SearchHistoryLimit)
	if err != nil {
		return fmt.Errorf("r.dao.RecordSelection -> %w", err)
	}
	return nil
}
