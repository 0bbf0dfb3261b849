package domain

import (
	"math"
	"time"
)

// AttendanceRecord is one ledger entry for a shift. A record with no clock-out
// is "open" and represents a shift in progress; at most one open record may
// exist per staff member.
type AttendanceRecord struct {
	ID            string
	StaffID       string
	StaffName     string
	WorkDate      time.Time
	ClockIn       time.Time
	ClockOut      *time.Time
	DurationHours *float64
	CreatedAt     time.Time
}

// Open reports whether the shift is still in progress.
func (r *AttendanceRecord) Open() bool {
	return r.ClockOut == nil
}

// ShiftHours computes the worked duration in hours, rounded to two decimals.
func ShiftHours(clockIn, clockOut time.Time) float64 {
	hours := clockOut.Sub(clockIn).Hours()
	return math.Round(hours*100) / 100
}

// ClockStatus names the two per-staff attendance states.
type ClockStatus string

const (
	StatusClockedIn  ClockStatus = "CLOCKED_IN"
	StatusClockedOut ClockStatus = "CLOCKED_OUT"
)
