package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks        []Task        `gorm:"foreignKey:OwnerID" json:"-"`
	Participants []Participant `gorm:"foreignKey:OwnerID" json:"-"`
}

// IsAdmin reports whether the user holds the privileged role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
