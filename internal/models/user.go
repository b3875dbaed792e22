package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	DisplayName  string         `json:"display_name"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-"`
	Role         string         `json:"role" gorm:"default:'user'"` // admin, user
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}
