package models

import "time"

// User is a person reporting recycling entries.
type User struct {
	UID          string    `gorm:"column:uid;type:text;primaryKey"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     *string   `gorm:"column:last_name"`
	Phone        *string   `gorm:"column:phone"`
	Email        string    `gorm:"column:email;not null"`
	ProfilePhoto string    `gorm:"column:profile_photo;not null;default:''"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
