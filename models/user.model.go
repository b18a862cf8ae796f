package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
)

type User struct {
	gorm.Model
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Name      string     `json:"name" gorm:"default:''"`
	Phone     string     `json:"phone" gorm:"default:''"`
	City      string     `json:"city" gorm:"default:''"`
	Avatar    string     `json:"avatar" gorm:"default:''"`
	Role      string     `json:"role" gorm:"default:'USER'"` // USER, MODERATOR
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login"`
}

// IsModerator reports whether the user carries the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
