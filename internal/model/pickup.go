package model

import "time"

// PickupStatus represents the status of a scheduled pickup.
type PickupStatus string

const (
	PickupStatusScheduled PickupStatus = "SCHEDULED"
	PickupStatusCompleted PickupStatus = "COMPLETED"
	PickupStatusCancelled PickupStatus = "CANCELLED"
)

// Pickup links a charity to a donation it has claimed. Pickups are history
// records: they are mutated through their status but never deleted.
type Pickup struct {
	ID            string       `json:"id"`
	FoodItemID    string       `json:"foodItemId"`
	CharityID     string       `json:"charityId"`
	ScheduledTime time.Time    `json:"scheduledTime"`
	Status        PickupStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Active reports whether the pickup still occupies its donation. At most one
// active pickup may exist per donation.
func (p *Pickup) Active() bool {
	return p.Status != PickupStatusCompleted && p.Status != PickupStatusCancelled
}
