package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/repository"
)

// CreatePickupInput carries the fields of a new pickup schedule.
type CreatePickupInput struct {
	FoodItemID    string
	CharityID     string
	ScheduledTime time.Time
}

// PickupService handles pickup scheduling. It enforces the invariant that a
// donation carries at most one active pickup at a time.
type PickupService interface {
	Create(ctx context.Context, input CreatePickupInput) (*model.Pickup, error)
	GetByFoodID(ctx context.Context, foodItemID string) (*model.Pickup, error)
}

type pickupService struct {
	pickupRepo   repository.PickupRepository
	donationRepo repository.DonationRepository
}

// NewPickupService creates a new pickup service.
func NewPickupService(pickupRepo repository.PickupRepository, donationRepo repository.DonationRepository) PickupService {
	return &pickupService{
		pickupRepo:   pickupRepo,
		donationRepo: donationRepo,
	}
}

// Create schedules a pickup for a claimed donation.
func (s *pickupService) Create(ctx context.Context, input CreatePickupInput) (*model.Pickup, error) {
	if _, err := s.donationRepo.FindByID(ctx, input.FoodItemID); err != nil {
		return nil, err
	}

	if existing, err := s.pickupRepo.FindActiveByFoodItemID(ctx, input.FoodItemID); err == nil && existing != nil {
		return nil, apperrors.ErrPickupExists
	}

	pickup := &model.Pickup{
		ID:            uuid.New().String(),
		FoodItemID:    input.FoodItemID,
		CharityID:     input.CharityID,
		ScheduledTime: input.ScheduledTime,
		Status:        model.PickupStatusScheduled,
		CreatedAt:     time.Now(),
	}

	if err := s.pickupRepo.Create(ctx, pickup); err != nil {
		return nil, fmt.Errorf("create pickup: %w", err)
	}
	return pickup, nil
}

// GetByFoodID returns the pickup linked to a donation.
func (s *pickupService) GetByFoodID(ctx context.Context, foodItemID string) (*model.Pickup, error) {
	return s.pickupRepo.FindByFoodItemID(ctx, foodItemID)
}
