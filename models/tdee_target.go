package models

import "gorm.io/gorm"

// TdeeTarget is one snapshot of a user's daily calorie/macro goals.
// Snapshots accumulate over time; the current target is the most
// recently created row.
type TdeeTarget struct {
	gorm.Model
	Calories Grams `gorm:"not null"` // TDEE, kcal
	Protein  Grams `gorm:"not null"`
	Carbs    Grams `gorm:"not null"`
	Fat      Grams `gorm:"not null"`
	UserID   uint  `gorm:"index;not null"`
}
