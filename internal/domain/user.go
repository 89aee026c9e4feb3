package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
	RoleMember   UserRole = "member"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex" validate:"required,min=3,max=64"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" gorm:"size:16;not null;default:member"`
	Score        int64     `json:"score" gorm:"not null;default:0"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
