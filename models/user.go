package models

import (
	"gorm.io/gorm"
)

// User is the identity record. A user owns many food entries and many
// TDEE target snapshots; both are reached through explicit queries.
type User struct {
	gorm.Model
	Username  string `gorm:"size:20;uniqueIndex;not null"`
	Email     string `gorm:"size:120;uniqueIndex;not null"`
	ImageFile string `gorm:"size:255;not null;default:default.jpg"`
	Password  string `gorm:"size:60;not null"` // bcrypt hash
}
