package dto

import "time"

// ScanRequest payload for presenting a terminal code.
type ScanRequest struct {
	Token string `json:"token"`
}

// ToggleResponse reports the outcome of a clock toggle.
type ToggleResponse struct {
	Status  string                    `json:"status"`
	Message string                    `json:"message"`
	Record  *AttendanceRecordResponse `json:"record,omitempty"`
}

// AttendanceRecordResponse is the outward ledger entry shape.
type AttendanceRecordResponse struct {
	ID            string     `json:"id"`
	StaffID       string     `json:"staff_id"`
	StaffName     string     `json:"staff_name"`
	WorkDate      string     `json:"work_date"`
	ClockIn       time.Time  `json:"clock_in"`
	ClockOut      *time.Time `json:"clock_out,omitempty"`
	DurationHours *float64   `json:"duration_hours,omitempty"`
}

// TerminalTokenResponse is the code the shared display renders.
type TerminalTokenResponse struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
