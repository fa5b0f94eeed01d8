package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusClosed    RentalStatus = "CLOSED"
	RentalStatusRejected  RentalStatus = "REJECTED"
)

// rentalTransitions is the only source of truth for the order state machine.
// ACTIVE is reachable only through the handover workflow and COMPLETED only
// through the return workflow; the services enforce that, this table enforces
// everything else.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:   {RentalStatusConfirmed, RentalStatusCancelled, RentalStatusRejected},
	RentalStatusConfirmed: {RentalStatusActive, RentalStatusCancelled},
	RentalStatusActive:    {RentalStatusCompleted},
	RentalStatusCompleted: {RentalStatusClosed},
}

// CanTransition reports whether the state table permits from -> to.
func CanTransition(from, to RentalStatus) bool {
	for _, next := range rentalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s RentalStatus) bool {
	return len(rentalTransitions[s]) == 0
}

type RentalOrder struct {
	ID            string       `json:"id"`
	RenterID      string       `json:"renter_id"`
	VehicleID     string       `json:"vehicle_id"`
	BranchStartID string       `json:"branch_start_id"`
	BranchEndID   string       `json:"branch_end_id"`
	// StaffID is assigned once handover begins and stays empty before that.
	StaffID *string `json:"staff_id,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	// Cost snapshot fields — captured at creation time from the vehicle type.
	// All later settlement uses these snapshots, not live catalog prices.
	EstimatedCostCents int64  `json:"estimated_cost_cents"`
	DepositCents       int64  `json:"deposit_cents"`
	// ActualCostCents stays nil until the order reaches COMPLETED.
	ActualCostCents *int64       `json:"actual_cost_cents,omitempty"`
	Status          RentalStatus `json:"status"`
	CancelReason    string       `json:"cancel_reason,omitempty"`
	RejectReason    string       `json:"reject_reason,omitempty"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}

// RentalOrderDetail is the child record a check-in and a check-out event each
// attach to. Exactly one is created with the booking; both workflows resolve
// it before submitting.
type RentalOrderDetail struct {
	ID        string    `json:"id"`
	RentalID  string    `json:"rental_id"`
	VehicleID string    `json:"vehicle_id"`
	CreatedOn time.Time `json:"created_on"`
}

// StatusPresentation is the single status -> display mapping shared by every
// renderer (customer dashboard, staff console, admin screens).
type StatusPresentation struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
}

var statusPresentations = map[RentalStatus]StatusPresentation{
	RentalStatusPending:   {Label: "Pending approval", Badge: "warning"},
	RentalStatusConfirmed: {Label: "Confirmed", Badge: "info"},
	RentalStatusActive:    {Label: "In use", Badge: "success"},
	RentalStatusCompleted: {Label: "Completed", Badge: "primary"},
	RentalStatusCancelled: {Label: "Cancelled", Badge: "secondary"},
	RentalStatusClosed:    {Label: "Closed", Badge: "dark"},
	RentalStatusRejected:  {Label: "Rejected", Badge: "danger"},
}

func PresentationFor(s RentalStatus) StatusPresentation {
	if p, ok := statusPresentations[s]; ok {
		return p
	}
	return StatusPresentation{Label: string(s), Badge: "secondary"}
}
