package domain

import "time"

// Feedback is the optional post-completion rating. One per rental, immutable
// once submitted, and never affects order state.
type Feedback struct {
	ID        string    `json:"id"`
	RentalID  string    `json:"rental_id"`
	RenterID  string    `json:"renter_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
