package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string    `json:"name"`
	Email    string    `json:"email" gorm:"uniqueIndex"`
	Password string    `json:"-"`
	Role     string    `json:"role" gorm:"type:varchar(20);default:'user'"` // user, owner, admin
	Bookings []Booking `json:"bookings,omitempty"`
}
