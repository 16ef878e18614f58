package repository

import (
	"context"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/store"
)

// DonationRepository defines food donation persistence operations.
type DonationRepository interface {
	List(ctx context.Context) ([]model.FoodDonation, error)
	FindByID(ctx context.Context, id string) (*model.FoodDonation, error)
	Create(ctx context.Context, donation *model.FoodDonation) error
	Update(ctx context.Context, donation *model.FoodDonation) error
	Remove(ctx context.Context, id string) error
}

type donationRepository struct {
	store store.Store
}

// NewDonationRepository builds a store-backed donation repository.
func NewDonationRepository(s store.Store) DonationRepository {
	return &donationRepository{store: s}
}

func (r *donationRepository) List(ctx context.Context) ([]model.FoodDonation, error) {
	var donations []model.FoodDonation
	if err := r.store.ReadCollection(ctx, model.CollectionFoodItems, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) FindByID(ctx context.Context, id string) (*model.FoodDonation, error) {
	donations, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range donations {
		if donations[i].ID == id {
			return &donations[i], nil
		}
	}
	return nil, apperrors.ErrDonationNotFound
}

func (r *donationRepository) Create(ctx context.Context, donation *model.FoodDonation) error {
	donations, err := r.List(ctx)
	if err != nil {
		return err
	}
	donations = append(donations, *donation)
	return r.store.WriteCollection(ctx, model.CollectionFoodItems, donations)
}

func (r *donationRepository) Update(ctx context.Context, donation *model.FoodDonation) error {
	donations, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range donations {
		if donations[i].ID == donation.ID {
			donations[i] = *donation
			return r.store.WriteCollection(ctx, model.CollectionFoodItems, donations)
		}
	}
	return apperrors.ErrDonationNotFound
}

func (r *donationRepository) Remove(ctx context.Context, id string) error {
	return store.RemoveByID(ctx, r.store, model.CollectionFoodItems, id)
}
