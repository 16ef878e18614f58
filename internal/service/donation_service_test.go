package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/repository"
	"sustainshare/internal/store"
	"sustainshare/internal/tracking"
)

// fixture wires a donation service over an in-memory store with a simulation
// fast enough for tests.
type fixture struct {
	donations    DonationService
	pickups      PickupService
	donationRepo repository.DonationRepository
	pickupRepo   repository.PickupRepository
	claimRepo    repository.ClaimRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	donationRepo := repository.NewDonationRepository(mem)
	pickupRepo := repository.NewPickupRepository(mem)
	claimRepo := repository.NewClaimRepository(mem)
	tracker := tracking.NewManager(tracking.Options{
		TotalSteps:   3,
		TickInterval: 5 * time.Millisecond,
	})
	return &fixture{
		donations:    NewDonationService(donationRepo, pickupRepo, claimRepo, tracker, nil),
		pickups:      NewPickupService(pickupRepo, donationRepo),
		donationRepo: donationRepo,
		pickupRepo:   pickupRepo,
		claimRepo:    claimRepo,
	}
}

func (f *fixture) createDonation(t *testing.T, ctx context.Context) *model.FoodDonation {
	t.Helper()
	donation, err := f.donations.Create(ctx, CreateDonationInput{
		Name:           "Vegetable Biryani",
		Quantity:       "25 kg",
		Category:       "Cooked Food",
		PickupLocation: "Banjara Hills, Hyderabad",
		ExpiryTime:     time.Now().Add(6 * time.Hour),
		DonorID:        "donor-1",
	})
	require.NoError(t, err)
	return donation
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDonationService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	donation := f.createDonation(t, ctx)

	assert.NotEmpty(t, donation.ID)
	assert.Equal(t, model.DonationStatusAvailable, donation.Status)
	assert.NotNil(t, donation.Coordinates, "ungeocoded donations get demo coordinates")

	list, err := f.donations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, donation.ID, list[0].ID)
}

func TestDonationService_Create_RejectsPastExpiry(t *testing.T) {
	f := newFixture(t)

	_, err := f.donations.Create(context.Background(), CreateDonationInput{
		Name:       "Stale Bread",
		Quantity:   "5 loaves",
		ExpiryTime: time.Now().Add(-time.Hour),
		DonorID:    "donor-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationExpired)
}

func TestDonationService_Claim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	claimed, err := f.donations.Claim(ctx, donation.ID, "charity-1")
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusClaimed, claimed.Status)
	assert.Equal(t, "charity-1", claimed.ClaimedBy)
	assert.NotNil(t, claimed.ClaimedAt)

	// Second claim loses; the first claimant is kept.
	_, err = f.donations.Claim(ctx, donation.ID, "charity-2")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyClaimed)

	stored, err := f.donations.Get(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, "charity-1", stored.ClaimedBy)

	// The winning claim leaves an audit record; the losing one does not.
	records, err := f.claimRepo.ListByFoodItemID(ctx, donation.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "charity-1", records[0].CharityID)
}

func TestDonationService_FullDeliveryFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	_, err := f.donations.Claim(ctx, donation.ID, "charity-1")
	require.NoError(t, err)

	pickup, err := f.pickups.Create(ctx, CreatePickupInput{
		FoodItemID:    donation.ID,
		CharityID:     "charity-1",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PickupStatusScheduled, pickup.Status)

	inTransit, err := f.donations.UpdateStatus(ctx, donation.ID, model.DonationStatusInTransit, "charity-1")
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusInTransit, inTransit.Status)

	snap, err := f.donations.Tracking(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, donation.ID, snap.DonationID)
	assert.Equal(t, tracking.SessionInTransit, snap.Status)

	// The simulation finishes the journey and marks the donation DELIVERED.
	waitFor(t, time.Second, func() bool {
		current, err := f.donations.Get(ctx, donation.ID)
		return err == nil && current.Status == model.DonationStatusDelivered
	})

	// The pickup follows the donation into its terminal state.
	waitFor(t, time.Second, func() bool {
		p, err := f.pickups.GetByFoodID(ctx, donation.ID)
		return err == nil && p.Status == model.PickupStatusCompleted
	})
}

func TestDonationService_UpdateStatus_ActorGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	_, err := f.donations.Claim(ctx, donation.ID, "charity-1")
	require.NoError(t, err)

	// Someone other than the claimant cannot start the delivery.
	_, err = f.donations.UpdateStatus(ctx, donation.ID, model.DonationStatusInTransit, "charity-2")
	assert.ErrorIs(t, err, apperrors.ErrNotPermitted)

	// An empty actor is the admin override path.
	updated, err := f.donations.UpdateStatus(ctx, donation.ID, model.DonationStatusInTransit, "")
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusInTransit, updated.Status)
}

func TestDonationService_CancelStopsTracking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	_, err := f.donations.Claim(ctx, donation.ID, "charity-1")
	require.NoError(t, err)
	_, err = f.donations.UpdateStatus(ctx, donation.ID, model.DonationStatusInTransit, "charity-1")
	require.NoError(t, err)
	_, err = f.donations.Tracking(ctx, donation.ID)
	require.NoError(t, err)

	cancelled, err := f.donations.UpdateStatus(ctx, donation.ID, model.DonationStatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusCancelled, cancelled.Status)

	_, err = f.donations.Tracking(ctx, donation.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoTrackingSession)

	// Cancelled donations stay cancelled even after the simulated journey
	// would have completed.
	time.Sleep(50 * time.Millisecond)
	current, err := f.donations.Get(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusCancelled, current.Status)
}

func TestDonationService_TrackingRecreatesLostSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	_, err := f.donations.Claim(ctx, donation.ID, "charity-1")
	require.NoError(t, err)
	_, err = f.donations.UpdateStatus(ctx, donation.ID, model.DonationStatusInTransit, "charity-1")
	require.NoError(t, err)

	// Simulate a restart: build a fresh service over the same store, with no
	// live sessions.
	restarted := NewDonationService(f.donationRepo, f.pickupRepo, f.claimRepo, tracking.NewManager(tracking.Options{
		TotalSteps:   3,
		TickInterval: 5 * time.Millisecond,
	}), nil)

	snap, err := restarted.Tracking(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, donation.ID, snap.DonationID)
	assert.Equal(t, tracking.SessionInTransit, snap.Status)
}

func TestDonationService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	require.NoError(t, f.donations.Delete(ctx, donation.ID))

	_, err := f.donations.Get(ctx, donation.ID)
	assert.ErrorIs(t, err, apperrors.ErrDonationNotFound)

	assert.ErrorIs(t, f.donations.Delete(ctx, donation.ID), apperrors.ErrDonationNotFound)
}

func TestDonationService_ListDerivesExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	donation := f.createDonation(t, ctx)

	// Backdate the expiry directly in the store.
	stored, err := f.donationRepo.FindByID(ctx, donation.ID)
	require.NoError(t, err)
	stored.ExpiryTime = time.Now().Add(-time.Minute)
	require.NoError(t, f.donationRepo.Update(ctx, stored))

	list, err := f.donations.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.DonationStatusExpired, list[0].Status)

	// The stored record still says AVAILABLE; expiry is derived at read time.
	raw, err := f.donationRepo.FindByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusAvailable, raw.Status)
}

func TestPickupService_OneActivePickupPerDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donation := f.createDonation(t, ctx)

	_, err := f.pickups.Create(ctx, CreatePickupInput{
		FoodItemID:    donation.ID,
		CharityID:     "charity-1",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = f.pickups.Create(ctx, CreatePickupInput{
		FoodItemID:    donation.ID,
		CharityID:     "charity-2",
		ScheduledTime: time.Now().Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrPickupExists)
}

func TestPickupService_UnknownDonation(t *testing.T) {
	f := newFixture(t)

	_, err := f.pickups.Create(context.Background(), CreatePickupInput{
		FoodItemID:    "missing",
		CharityID:     "charity-1",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationNotFound)
}
