package model

import "time"

// Role is the fixed set of identity roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleJudge    Role = "judge"
	RoleLawyer   Role = "lawyer"
	RoleLitigant Role = "litigant"
	RoleClerk    Role = "clerk"
	RolePublic   Role = "public"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleJudge, RoleLawyer, RoleLitigant, RoleClerk, RolePublic:
		return true
	}
	return false
}

// User is an identity. Identities are never physically deleted; dependent
// records carry their own active flags instead.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:100;not null"` // stored lowercase
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	FullName     string `json:"full_name" gorm:"size:255"`
	Role         Role   `json:"role" gorm:"size:20;not null;default:'public'"`
	Verified     bool   `json:"verified" gorm:"not null;default:false"`

	// RefreshTokenHash holds the sha256 hex of the currently trusted refresh
	// token. At most one refresh token per identity is valid at a time:
	// issuing a new one, logging out or changing the password replaces or
	// clears this value and invalidates the prior token.
	RefreshTokenHash string `json:"-" gorm:"size:64"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
