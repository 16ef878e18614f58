package model

// Stats is the homepage summary returned by /stats.
type Stats struct {
	PeopleFed        int64 `json:"peopleFed"`
	ActiveDonors     int64 `json:"activeDonors"`
	PartnerCharities int64 `json:"partnerCharities"`
}
