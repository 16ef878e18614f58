package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainshare/internal/model"
	"sustainshare/internal/repository"
	"sustainshare/internal/store"
)

func seedStatsData(t *testing.T, ctx context.Context, mem *store.Memory) {
	t.Helper()

	users := []model.User{
		{ID: "d1", Email: "d1@x.com", Role: model.RoleDonor},
		{ID: "d2", Email: "d2@x.com", Role: model.RoleDonor},
		{ID: "c1", Email: "c1@x.com", Role: model.RoleCharity},
		{ID: "a1", Email: "a1@x.com", Role: model.RoleAdmin},
	}
	require.NoError(t, mem.WriteCollection(ctx, model.CollectionUsers, users))

	donations := []model.FoodDonation{
		{ID: "f1", Quantity: "50 servings", Status: model.DonationStatusDelivered},
		{ID: "f2", Quantity: "25 kg", Status: model.DonationStatusDelivered},
		{ID: "f3", Quantity: "unknown amount", Status: model.DonationStatusDelivered},
		{ID: "f4", Quantity: "100 servings", Status: model.DonationStatusAvailable},
	}
	require.NoError(t, mem.WriteCollection(ctx, model.CollectionFoodItems, donations))
}

func TestStatsService_Summary(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seedStatsData(t, ctx, mem)

	svc := NewStatsService(repository.NewUserRepository(mem), repository.NewDonationRepository(mem), nil)

	stats, err := svc.Summary(ctx)
	require.NoError(t, err)

	// Delivered quantities only, leading numeric token only; unparsable
	// quantities count as zero. 50 + 25 on top of the demo baseline.
	assert.Equal(t, int64(75+peopleFedBaseline), stats.PeopleFed)
	assert.Equal(t, int64(2+activeDonorsBaseline), stats.ActiveDonors)
	assert.Equal(t, int64(1+partnerCharitiesBaseline), stats.PartnerCharities)
}

func TestStatsService_Summary_EmptyStore(t *testing.T) {
	mem := store.NewMemory()
	svc := NewStatsService(repository.NewUserRepository(mem), repository.NewDonationRepository(mem), nil)

	stats, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(peopleFedBaseline), stats.PeopleFed)
	assert.Equal(t, int64(activeDonorsBaseline), stats.ActiveDonors)
	assert.Equal(t, int64(partnerCharitiesBaseline), stats.PartnerCharities)
}

func TestStatsService_Summary_DecimalQuantities(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	donations := []model.FoodDonation{
		{ID: "f1", Quantity: "12.5 kg", Status: model.DonationStatusDelivered, ExpiryTime: time.Now().Add(time.Hour)},
		{ID: "f2", Quantity: "7.5 kg", Status: model.DonationStatusDelivered, ExpiryTime: time.Now().Add(time.Hour)},
	}
	require.NoError(t, mem.WriteCollection(ctx, model.CollectionFoodItems, donations))

	svc := NewStatsService(repository.NewUserRepository(mem), repository.NewDonationRepository(mem), nil)

	stats, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20+peopleFedBaseline), stats.PeopleFed)
}
