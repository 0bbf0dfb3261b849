package dto

import "time"

// StaffCreateRequest payload for adding a staff member.
type StaffCreateRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	PIN      string `json:"pin"`
	JobTitle string `json:"job_title"`
}

// StaffUpdateRequest payload for mutating a staff member. Omitted fields are
// left unchanged.
type StaffUpdateRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	PIN      *string `json:"pin"`
	JobTitle *string `json:"job_title"`
	Active   *bool   `json:"active"`
}

// StaffResponse is the outward staff shape. The PIN hash never leaves the
// service.
type StaffResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	JobTitle    string     `json:"job_title"`
	IsClockedIn bool       `json:"is_clocked_in"`
	LastClockIn *time.Time `json:"last_clock_in,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
