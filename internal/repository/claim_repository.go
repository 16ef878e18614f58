package repository

import (
	"context"

	"sustainshare/internal/model"
	"sustainshare/internal/store"
)

// ClaimRepository persists the append-only claim audit trail.
type ClaimRepository interface {
	Append(ctx context.Context, record *model.ClaimRecord) error
	ListByFoodItemID(ctx context.Context, foodItemID string) ([]model.ClaimRecord, error)
}

type claimRepository struct {
	store store.Store
}

// NewClaimRepository builds a store-backed claim repository.
func NewClaimRepository(s store.Store) ClaimRepository {
	return &claimRepository{store: s}
}

func (r *claimRepository) Append(ctx context.Context, record *model.ClaimRecord) error {
	var records []model.ClaimRecord
	if err := r.store.ReadCollection(ctx, model.CollectionClaims, &records); err != nil {
		return err
	}
	records = append(records, *record)
	return r.store.WriteCollection(ctx, model.CollectionClaims, records)
}

func (r *claimRepository) ListByFoodItemID(ctx context.Context, foodItemID string) ([]model.ClaimRecord, error) {
	var records []model.ClaimRecord
	if err := r.store.ReadCollection(ctx, model.CollectionClaims, &records); err != nil {
		return nil, err
	}
	matched := records[:0]
	for _, rec := range records {
		if rec.FoodItemID == foodItemID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}
