package domain

import "time"

// Role classifies an account as student or teacher. It is a closed set;
// authorization checks switch on it exhaustively.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole maps a free-form role string onto the closed set, defaulting
// to student for anything unrecognized.
func ParseRole(s string) Role {
	if Role(s) == RoleTeacher {
		return RoleTeacher
	}
	return RoleStudent
}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User is the domain model for registered accounts. PasswordHash holds the
// bcrypt digest; the raw password is never stored or serialized outward.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
