package domain

import "time"

// Contract carries the bilateral signature state for a rental's legal
// agreement. The renter flag is normally set by the booking confirmation
// step; the handover gate only checks the staff flag.
type Contract struct {
	ID             string    `json:"id"`
	RentalID       string    `json:"rental_id"`
	SignedByRenter bool      `json:"signed_by_renter"`
	SignedByStaff  bool      `json:"signed_by_staff"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}
