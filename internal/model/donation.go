package model

import "time"

// DonationStatus represents the lifecycle status of a food donation.
type DonationStatus string

const (
	DonationStatusAvailable DonationStatus = "AVAILABLE"
	DonationStatusClaimed   DonationStatus = "CLAIMED"
	DonationStatusInTransit DonationStatus = "IN_TRANSIT"
	DonationStatusDelivered DonationStatus = "DELIVERED"
	DonationStatusExpired   DonationStatus = "EXPIRED"
	DonationStatusCancelled DonationStatus = "CANCELLED"
)

// Terminal reports whether no further transition is defined from s.
func (s DonationStatus) Terminal() bool {
	switch s {
	case DonationStatusDelivered, DonationStatusExpired, DonationStatusCancelled:
		return true
	}
	return false
}

// FoodDonation represents surplus food offered for pickup.
// Records are stored as JSON in the food_items collection.
type FoodDonation struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Quantity       string         `json:"quantity"`
	Category       string         `json:"category"`
	PickupLocation string         `json:"pickupLocation"`
	Coordinates    *[2]float64    `json:"coordinates"` // [lat, lng], nil when not geocoded
	ExpiryTime     time.Time      `json:"expiryTime"`
	Description    string         `json:"description,omitempty"`
	Allergens      string         `json:"allergens,omitempty"`
	DonorID        string         `json:"donorId"`
	Status         DonationStatus `json:"status"`
	ClaimedBy      string         `json:"claimedBy,omitempty"`
	ClaimedAt      *time.Time     `json:"claimedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// EffectiveStatus returns the status to present at read time. An AVAILABLE
// donation past its expiry is shown as EXPIRED; the stored status is never
// rewritten and no other status is affected by time.
func (d *FoodDonation) EffectiveStatus(now time.Time) DonationStatus {
	if d.Status == DonationStatusAvailable && now.After(d.ExpiryTime) {
		return DonationStatusExpired
	}
	return d.Status
}
