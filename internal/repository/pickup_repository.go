package repository

import (
	"context"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/store"
)

// PickupRepository defines pickup persistence operations. Pickups are never
// deleted; they form the fulfillment history of a donation.
type PickupRepository interface {
	Create(ctx context.Context, pickup *model.Pickup) error
	Update(ctx context.Context, pickup *model.Pickup) error
	FindByFoodItemID(ctx context.Context, foodItemID string) (*model.Pickup, error)
	FindActiveByFoodItemID(ctx context.Context, foodItemID string) (*model.Pickup, error)
}

type pickupRepository struct {
	store store.Store
}

// NewPickupRepository builds a store-backed pickup repository.
func NewPickupRepository(s store.Store) PickupRepository {
	return &pickupRepository{store: s}
}

func (r *pickupRepository) list(ctx context.Context) ([]model.Pickup, error) {
	var pickups []model.Pickup
	if err := r.store.ReadCollection(ctx, model.CollectionPickups, &pickups); err != nil {
		return nil, err
	}
	return pickups, nil
}

func (r *pickupRepository) Create(ctx context.Context, pickup *model.Pickup) error {
	pickups, err := r.list(ctx)
	if err != nil {
		return err
	}
	pickups = append(pickups, *pickup)
	return r.store.WriteCollection(ctx, model.CollectionPickups, pickups)
}

func (r *pickupRepository) Update(ctx context.Context, pickup *model.Pickup) error {
	pickups, err := r.list(ctx)
	if err != nil {
		return err
	}
	for i := range pickups {
		if pickups[i].ID == pickup.ID {
			pickups[i] = *pickup
			return r.store.WriteCollection(ctx, model.CollectionPickups, pickups)
		}
	}
	return apperrors.ErrPickupNotFound
}

// FindByFoodItemID returns the most recent pickup for a donation.
func (r *pickupRepository) FindByFoodItemID(ctx context.Context, foodItemID string) (*model.Pickup, error) {
	pickups, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(pickups) - 1; i >= 0; i-- {
		if pickups[i].FoodItemID == foodItemID {
			return &pickups[i], nil
		}
	}
	return nil, apperrors.ErrPickupNotFound
}

// FindActiveByFoodItemID returns the pickup currently occupying a donation.
func (r *pickupRepository) FindActiveByFoodItemID(ctx context.Context, foodItemID string) (*model.Pickup, error) {
	pickups, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pickups {
		if pickups[i].FoodItemID == foodItemID && pickups[i].Active() {
			return &pickups[i], nil
		}
	}
	return nil, apperrors.ErrPickupNotFound
}
