package domain

type Vehicle struct {
	ID              string `json:"id"`
	TypeID          string `json:"type_id"`
	LicensePlate    string `json:"license_plate"`
	BatteryCapacity int    `json:"battery_capacity_kwh"`
	ManufactureYear int    `json:"manufacture_year"`
	BranchID        string `json:"branch_id"`
}

type VehicleType struct {
	ID             string `json:"id"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	BasePriceCents int64  `json:"base_price_cents"` // per billable day
}
