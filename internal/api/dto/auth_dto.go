package dto

import "time"

// LoginRequest payload for PIN login.
type LoginRequest struct {
	StaffID string `json:"staff_id"`
	PIN     string `json:"pin"`
}

// PINChangeRequest payload for changing the caller's PIN.
type PINChangeRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Staff     StaffResponse `json:"staff"`
}
