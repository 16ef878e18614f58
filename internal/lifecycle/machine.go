// Package lifecycle implements the donation status state machine. All
// transitions mutate the record only after every guard has passed, so a
// rejected event leaves the donation exactly as it was.
package lifecycle

import (
	"time"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
)

// Claim moves an AVAILABLE, unexpired donation to CLAIMED and records the
// claimant. A claimant is mandatory: a CLAIMED donation always knows who
// claimed it. Claiming anything else fails: a second claim on the same
// donation reports ErrAlreadyClaimed and keeps the first claimant.
func Claim(d *model.FoodDonation, charityID string, now time.Time) error {
	if charityID == "" {
		return apperrors.ErrNotPermitted
	}
	if d.Status != model.DonationStatusAvailable {
		return apperrors.ErrAlreadyClaimed
	}
	if !d.ExpiryTime.After(now) {
		return apperrors.ErrDonationExpired
	}
	claimedAt := now
	d.Status = model.DonationStatusClaimed
	d.ClaimedBy = charityID
	d.ClaimedAt = &claimedAt
	return nil
}

// MarkInTransit moves a CLAIMED donation to IN_TRANSIT. When actorID is
// supplied it must be the donor or the claiming charity; an empty actorID is
// an admin override and skips the check.
func MarkInTransit(d *model.FoodDonation, actorID string) error {
	if d.Status != model.DonationStatusClaimed {
		return apperrors.ErrInvalidTransition
	}
	if actorID != "" && actorID != d.DonorID && actorID != d.ClaimedBy {
		return apperrors.ErrNotPermitted
	}
	d.Status = model.DonationStatusInTransit
	return nil
}

// MarkDelivered completes a donation. Allowed from IN_TRANSIT, and also
// directly from CLAIMED for donor-confirmed drop-offs.
func MarkDelivered(d *model.FoodDonation) error {
	if d.Status != model.DonationStatusInTransit && d.Status != model.DonationStatusClaimed {
		return apperrors.ErrInvalidTransition
	}
	d.Status = model.DonationStatusDelivered
	return nil
}

// Cancel abandons a claimed or in-transit donation. The donation does not
// revert to AVAILABLE; a cancelled claim requires re-listing, which avoids
// races with stale claim state.
func Cancel(d *model.FoodDonation) error {
	if d.Status != model.DonationStatusClaimed && d.Status != model.DonationStatusInTransit {
		return apperrors.ErrInvalidTransition
	}
	d.Status = model.DonationStatusCancelled
	return nil
}

// Apply drives the donation toward the given target status using the
// matching event. Used by the explicit status-override endpoint.
func Apply(d *model.FoodDonation, target model.DonationStatus, actorID string, now time.Time) error {
	switch target {
	case model.DonationStatusClaimed:
		return Claim(d, actorID, now)
	case model.DonationStatusInTransit:
		return MarkInTransit(d, actorID)
	case model.DonationStatusDelivered:
		return MarkDelivered(d)
	case model.DonationStatusCancelled:
		return Cancel(d)
	default:
		// AVAILABLE and EXPIRED are never transition targets: the former
		// would reopen a claim race, the latter is derived at read time.
		return apperrors.ErrInvalidTransition
	}
}
