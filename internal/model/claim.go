package model

import "time"

// ClaimRecord is an audit entry written whenever a charity claims a
// donation. Unlike the donation's own claim fields it survives cancellation
// and re-listing, so the history of who claimed what is never lost.
type ClaimRecord struct {
	ID         string    `json:"id"`
	FoodItemID string    `json:"foodItemId"`
	CharityID  string    `json:"charityId"`
	ClaimedAt  time.Time `json:"claimedAt"`
}
