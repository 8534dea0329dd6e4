package models

import "time"

// Role identifies the authority level of a principal.
type Role string

const (
	// RoleCOO is the top authority: fee configuration, role grants, withdrawals.
	RoleCOO Role = "COO"
	// RoleUniAdmin administers students, courses and enrollment closing.
	RoleUniAdmin Role = "UNI_ADMIN"
	// RoleOutsider is the default role of a freshly registered principal.
	RoleOutsider Role = "OUTSIDER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCOO, RoleUniAdmin, RoleOutsider:
		return true
	}
	return false
}

// Principal is an authenticated identity. Admission to the university is
// tracked separately by the ledger; the principal record only carries
// credentials and the granted role.
type Principal struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
