package model

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
	RoleDriver Role = "DRIVER"
)

// ParseRole maps a wire value onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleDriver:
		return Role(s), true
	}
	return "", false
}

// Authority returns the wire-level role encoding ("ROLE_<role>").
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Password     string    `gorm:"not null" json:"-"` // bcrypt digest, never serialized
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	Verified     bool      `gorm:"default:false" json:"verified"`
	Email        *string   `json:"email,omitempty"`
	Name         *string   `json:"name,omitempty"`         // company name, CLIENT only
	ActivityType *string   `json:"activityType,omitempty"` // CLIENT only
	UnpID        *uint     `gorm:"index" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Unp *Unp `gorm:"foreignKey:UnpID" json:"unp,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UnpNumber returns the user's UNP registry number, if any.
func (u *User) UnpNumber() *string {
	if u.Unp == nil {
		return nil
	}
	return &u.Unp.Unp
}
