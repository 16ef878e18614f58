package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"sustainshare/internal/model"
)

func TestReadNeverWrittenCollection(t *testing.T) {
	s := NewMemory()

	var records []model.FoodDonation
	err := s.ReadCollection(context.Background(), model.CollectionFoodItems, &records)

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	donations := []model.FoodDonation{
		{ID: "food-1", Name: "Rice", Quantity: "10", Status: model.DonationStatusAvailable},
		{ID: "food-2", Name: "Organic Fruits", Quantity: "100 pieces", Status: model.DonationStatusClaimed},
	}

	assert.NoError(t, s.WriteCollection(ctx, model.CollectionFoodItems, donations))

	var got []model.FoodDonation
	assert.NoError(t, s.ReadCollection(ctx, model.CollectionFoodItems, &got))
	assert.Equal(t, donations, got)
}

func TestWriteNilNormalizesToEmptyArray(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var none []model.User
	assert.NoError(t, s.WriteCollection(ctx, model.CollectionUsers, none))

	var got []model.User
	assert.NoError(t, s.ReadCollection(ctx, model.CollectionUsers, &got))
	assert.Empty(t, got)
}

func TestUpsert(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	assert.NoError(t, Upsert(ctx, s, model.CollectionFoodItems, "food-1", map[string]interface{}{
		"name": "Rice", "status": "AVAILABLE",
	}))
	assert.NoError(t, Upsert(ctx, s, model.CollectionFoodItems, "food-1", map[string]interface{}{
		"status": "CLAIMED",
	}))

	var records []map[string]interface{}
	assert.NoError(t, s.ReadCollection(ctx, model.CollectionFoodItems, &records))
	assert.Len(t, records, 1)
	assert.Equal(t, "Rice", records[0]["name"])
	assert.Equal(t, "CLAIMED", records[0]["status"])
}

func TestRemoveByID(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	assert.NoError(t, Upsert(ctx, s, model.CollectionPickups, "pickup-1", map[string]interface{}{"status": "SCHEDULED"}))
	assert.NoError(t, Upsert(ctx, s, model.CollectionPickups, "pickup-2", map[string]interface{}{"status": "SCHEDULED"}))

	assert.NoError(t, RemoveByID(ctx, s, model.CollectionPickups, "pickup-1"))
	// Removing an absent id is a no-op.
	assert.NoError(t, RemoveByID(ctx, s, model.CollectionPickups, "pickup-9"))

	var records []map[string]interface{}
	assert.NoError(t, s.ReadCollection(ctx, model.CollectionPickups, &records))
	assert.Len(t, records, 1)
	assert.Equal(t, "pickup-2", records[0]["id"])
}
