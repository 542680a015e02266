package models

import "time"

// User represents a registered participant or staff member
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"type:varchar(50);unique;not null" json:"username"`
	Email         string     `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff       bool       `gorm:"not null;default:false" json:"is_staff"`
	Blocked       bool       `gorm:"not null;default:false" json:"blocked"`
	CreatedAt     time.Time  `json:"created_at"`
	LastConnected *time.Time `json:"last_connected"`
}
