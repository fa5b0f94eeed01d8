package domain

type Branch struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	WorkingHours  string `json:"working_hours"`
}
