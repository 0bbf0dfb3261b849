package domain

import "time"

// StaffRole enumerates salon roles, ordered by privilege.
type StaffRole string

const (
	StaffRoleStaff      StaffRole = "STAFF"
	StaffRoleSupervisor StaffRole = "SUPERVISOR"
	StaffRoleManager    StaffRole = "MANAGER"
)

// ValidRole reports whether the role is one of the known values.
func ValidRole(role StaffRole) bool {
	switch role {
	case StaffRoleStaff, StaffRoleSupervisor, StaffRoleManager:
		return true
	}
	return false
}

// AtLeast reports whether the role carries at least the given privilege.
func (r StaffRole) AtLeast(min StaffRole) bool {
	return roleRank(r) >= roleRank(min)
}

func roleRank(r StaffRole) int {
	switch r {
	case StaffRoleManager:
		return 3
	case StaffRoleSupervisor:
		return 2
	case StaffRoleStaff:
		return 1
	}
	return 0
}

// StaffMember models a salon employee. IsClockedIn is a cached projection of
// "an open attendance record exists"; the clock service keeps the two in step.
type StaffMember struct {
	ID          string
	Name        string
	Role        StaffRole
	PINHash     string
	JobTitle    string
	IsClockedIn bool
	LastClockIn *time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
