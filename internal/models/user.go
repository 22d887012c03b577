package models

import "gorm.io/gorm"

// User is the minimal profile the assistant knows about
type User struct {
	gorm.Model
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" gorm:"index"`
	Phone     string `json:"phone" gorm:"index"` // WhatsApp number for reminders, E.164
}
