// PlantDiseaseDetector | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsUser       bool      `db:"is_user"`
	IsAdmin      bool      `db:"is_admin"`
	IsSuperAdmin bool      `db:"is_super_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// RolePatch is an allow-listed partial update of the three independent
// role flags. Absent fields leave the stored flag untouched; unknown
// JSON keys never reach the store.
type RolePatch struct {
	IsUser       *bool
	IsAdmin      *bool
	IsSuperAdmin *bool
}

func (u *User) ApplyRolePatch(patch RolePatch) {
	if patch.IsUser != nil {
		u.IsUser = *patch.IsUser
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}
	if patch.IsSuperAdmin != nil {
		u.IsSuperAdmin = *patch.IsSuperAdmin
	}
}
