package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"sustainshare/internal/cache"
	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/geo"
	"sustainshare/internal/lifecycle"
	"sustainshare/internal/model"
	"sustainshare/internal/repository"
	"sustainshare/internal/tracking"
)

// statsCacheKey is invalidated whenever a mutation can change the summary.
const statsCacheKey = "stats:summary"

// hyderabadLocations supplies demo coordinates for donations posted without
// geocoding, matching the pilot city's neighborhoods.
var hyderabadLocations = [][2]float64{
	{17.4065, 78.4772}, // Banjara Hills
	{17.4126, 78.44},   // Jubilee Hills
	{17.4483, 78.3915}, // Hitech City
	{17.4374, 78.4482}, // Ameerpet
	{17.3616, 78.4747}, // Charminar
	{17.3687, 78.5318}, // Dilsukhnagar
}

// defaultCharityCoords is where simulated journeys end when the claiming
// charity has no stored coordinates.
var defaultCharityCoords = geo.Point{17.4126, 78.44}

// CreateDonationInput carries the donor-supplied fields of a new donation.
type CreateDonationInput struct {
	Name           string
	Quantity       string
	Category       string
	PickupLocation string
	Coordinates    *[2]float64
	ExpiryTime     time.Time
	Description    string
	Allergens      string
	DonorID        string
}

// DonationService governs the donation lifecycle: creation, claiming, status
// transitions, and the tracking sessions tied to in-transit donations.
type DonationService interface {
	List(ctx context.Context) ([]model.FoodDonation, error)
	Get(ctx context.Context, id string) (*model.FoodDonation, error)
	Create(ctx context.Context, input CreateDonationInput) (*model.FoodDonation, error)
	Claim(ctx context.Context, id, charityID string) (*model.FoodDonation, error)
	UpdateStatus(ctx context.Context, id string, status model.DonationStatus, actorID string) (*model.FoodDonation, error)
	Delete(ctx context.Context, id string) error
	Tracking(ctx context.Context, id string) (tracking.Snapshot, error)
}

type donationService struct {
	donationRepo repository.DonationRepository
	pickupRepo   repository.PickupRepository
	claimRepo    repository.ClaimRepository
	tracker      *tracking.Manager
	cache        *cache.Client
}

// NewDonationService creates a new donation service.
func NewDonationService(
	donationRepo repository.DonationRepository,
	pickupRepo repository.PickupRepository,
	claimRepo repository.ClaimRepository,
	tracker *tracking.Manager,
	cacheClient *cache.Client,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		pickupRepo:   pickupRepo,
		claimRepo:    claimRepo,
		tracker:      tracker,
		cache:        cacheClient,
	}
}

// List returns all donations with time-derived statuses applied. The stored
// records are untouched; expiry is a display concern.
func (s *donationService) List(ctx context.Context) ([]model.FoodDonation, error) {
	donations, err := s.donationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range donations {
		donations[i].Status = donations[i].EffectiveStatus(now)
	}
	return donations, nil
}

func (s *donationService) Get(ctx context.Context, id string) (*model.FoodDonation, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	donation.Status = donation.EffectiveStatus(time.Now())
	return donation, nil
}

// Create validates and stores a new donation. Every donation starts
// AVAILABLE with an expiry in the future.
func (s *donationService) Create(ctx context.Context, input CreateDonationInput) (*model.FoodDonation, error) {
	now := time.Now()
	if !input.ExpiryTime.After(now) {
		return nil, apperrors.ErrDonationExpired
	}

	coordinates := input.Coordinates
	if coordinates == nil {
		picked := hyderabadLocations[rand.Intn(len(hyderabadLocations))]
		coordinates = &picked
	}

	donation := &model.FoodDonation{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Quantity:       input.Quantity,
		Category:       input.Category,
		PickupLocation: input.PickupLocation,
		Coordinates:    coordinates,
		ExpiryTime:     input.ExpiryTime,
		Description:    input.Description,
		Allergens:      input.Allergens,
		DonorID:        input.DonorID,
		Status:         model.DonationStatusAvailable,
		CreatedAt:      now,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	return donation, nil
}

// Claim transitions an available donation to CLAIMED for the given charity.
func (s *donationService) Claim(ctx context.Context, id, charityID string) (*model.FoodDonation, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Claim(donation, charityID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, fmt.Errorf("save claim: %w", err)
	}

	// The audit record is best-effort; the claim itself already took.
	record := &model.ClaimRecord{
		ID:         uuid.New().String(),
		FoodItemID: donation.ID,
		CharityID:  charityID,
		ClaimedAt:  *donation.ClaimedAt,
	}
	if err := s.claimRepo.Append(ctx, record); err != nil {
		slog.Warn("claim audit append failed", "donation", donation.ID, "error", err)
	}

	return donation, nil
}

// UpdateStatus drives a donation toward an explicit target status. Moving to
// IN_TRANSIT starts a tracking session; leaving IN_TRANSIT tears it down.
func (s *donationService) UpdateStatus(ctx context.Context, id string, status model.DonationStatus, actorID string) (*model.FoodDonation, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := donation.Status
	if err := lifecycle.Apply(donation, status, actorID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, fmt.Errorf("save status: %w", err)
	}

	s.syncPickup(ctx, donation)

	switch donation.Status {
	case model.DonationStatusInTransit:
		s.startTracking(donation)
	case model.DonationStatusDelivered, model.DonationStatusCancelled:
		if previous == model.DonationStatusInTransit {
			s.tracker.Stop(donation.ID)
		}
		_ = s.cache.Delete(ctx, statsCacheKey)
	}

	return donation, nil
}

// Delete removes a donation entirely; this is the donor withdrawing a
// listing, not a lifecycle transition.
func (s *donationService) Delete(ctx context.Context, id string) error {
	if _, err := s.donationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	s.tracker.Stop(id)
	return s.donationRepo.Remove(ctx, id)
}

// Tracking returns the live simulated position for an in-transit donation.
// A session lost to a restart is recreated on demand.
func (s *donationService) Tracking(ctx context.Context, id string) (tracking.Snapshot, error) {
	if snap, ok := s.tracker.Get(id); ok {
		return snap, nil
	}

	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return tracking.Snapshot{}, err
	}
	if donation.Status != model.DonationStatusInTransit {
		return tracking.Snapshot{}, apperrors.ErrNoTrackingSession
	}

	session := s.startTracking(donation)
	return session.Snapshot(), nil
}

func (s *donationService) startTracking(donation *model.FoodDonation) *tracking.Session {
	donor := defaultCharityCoords
	if donation.Coordinates != nil {
		donor = geo.Point(*donation.Coordinates)
	}

	id := donation.ID
	return s.tracker.Start(id, donor, defaultCharityCoords, func() {
		s.completeDelivery(id)
	})
}

// completeDelivery is the simulator's completion callback: the journey ended
// at the charity, so the donation becomes DELIVERED.
func (s *donationService) completeDelivery(id string) {
	ctx := context.Background()

	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		slog.Warn("tracking completion for unknown donation", "donation", id, "error", err)
		return
	}
	if err := lifecycle.MarkDelivered(donation); err != nil {
		// Already moved out of transit out-of-band; nothing to do.
		return
	}
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		slog.Warn("save delivery failed", "donation", id, "error", err)
		return
	}
	s.syncPickup(ctx, donation)
	_ = s.cache.Delete(ctx, statsCacheKey)
}

// syncPickup mirrors terminal donation statuses onto the active pickup.
func (s *donationService) syncPickup(ctx context.Context, donation *model.FoodDonation) {
	var target model.PickupStatus
	switch donation.Status {
	case model.DonationStatusDelivered:
		target = model.PickupStatusCompleted
	case model.DonationStatusCancelled:
		target = model.PickupStatusCancelled
	default:
		return
	}

	pickup, err := s.pickupRepo.FindActiveByFoodItemID(ctx, donation.ID)
	if err != nil {
		return
	}
	pickup.Status = target
	if err := s.pickupRepo.Update(ctx, pickup); err != nil {
		slog.Warn("pickup sync failed", "pickup", pickup.ID, "error", err)
	}
}
