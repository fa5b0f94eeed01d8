package domain

import "time"

// CheckinChecklist is the staff attestation recorded at vehicle release.
// Every item must be true before handover can complete.
type CheckinChecklist struct {
	Exterior     bool `json:"exterior"`
	Interior     bool `json:"interior"`
	BatteryMotor bool `json:"battery_motor"`
	Documents    bool `json:"documents"`
	PhotosTaken  bool `json:"photos_taken"`
}

func (c CheckinChecklist) Complete() bool {
	return c.Exterior && c.Interior && c.BatteryMotor && c.Documents && c.PhotosTaken
}

// CheckoutChecklist is the staff attestation recorded at vehicle return.
type CheckoutChecklist struct {
	Exterior  bool `json:"exterior"`
	Interior  bool `json:"interior"`
	Battery   bool `json:"battery"`
	Tires     bool `json:"tires"`
	Lights    bool `json:"lights"`
	Documents bool `json:"documents"`
}

func (c CheckoutChecklist) Complete() bool {
	return c.Exterior && c.Interior && c.Battery && c.Tires && c.Lights && c.Documents
}

// InspectionPhoto is a stored photo attachment on a check-in or check-out
// record.
type InspectionPhoto struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// CheckinRecord is the condition snapshot appended when a vehicle is released
// to the renter. Records are append-only and never mutated.
type CheckinRecord struct {
	ID           string            `json:"id"`
	DetailID     string            `json:"detail_id"`
	StaffID      string            `json:"staff_id"`
	OdometerKm   int64             `json:"odometer_km"`
	BatteryLevel int               `json:"battery_level"`
	Note         string            `json:"note,omitempty"`
	Photos       []InspectionPhoto `json:"photos,omitempty"`
	CreatedOn    time.Time         `json:"created_on"`
}

// CheckoutRecord is the condition snapshot appended when a vehicle is
// returned, including the settled extra fee. Append-only.
type CheckoutRecord struct {
	ID            string            `json:"id"`
	DetailID      string            `json:"detail_id"`
	StaffID       string            `json:"staff_id"`
	OdometerKm    int64             `json:"odometer_km"`
	BatteryLevel  int               `json:"battery_level"`
	LateFeeCents  int64             `json:"late_fee_cents"`
	ExtraFeeCents int64             `json:"extra_fee_cents"`
	Note          string            `json:"note,omitempty"`
	Photos        []InspectionPhoto `json:"photos,omitempty"`
	CreatedOn     time.Time         `json:"created_on"`
}
