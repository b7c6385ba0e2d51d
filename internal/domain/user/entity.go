package user

import "time"

// Role is the numeric role code stored on each user.
type Role int

const (
	RoleEmployee Role = 1 // Regular employee
	RoleTTF      Role = 2 // Team task force - approves leave for their employees
	RoleSuperTTF Role = 3 // Senior tier - oversees TTFs
)

func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "employee"
	case RoleTTF:
		return "ttf"
	case RoleSuperTTF:
		return "super_ttf"
	default:
		return "unknown"
	}
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	IsActive     bool

	// Reporting chain. An employee points at their TTF, a TTF at their
	// Super TTF. Nil at the top of the chain.
	TTFID  *string
	STTFID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmployee checks exact role-code equality.
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

func (u *User) IsTTF() bool {
	return u.Role == RoleTTF
}

func (u *User) IsSuperTTF() bool {
	return u.Role == RoleSuperTTF
}

// CanApprove checks if the user can decide leave requests.
func (u *User) CanApprove() bool {
	return u.Role == RoleTTF || u.Role == RoleSuperTTF
}
