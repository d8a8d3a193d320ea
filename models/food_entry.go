package models

import "gorm.io/gorm"

// FoodEntry is one logged food item with its macro content.
// Names are not unique; delete and rename pick the user's oldest match.
type FoodEntry struct {
	gorm.Model
	Name     string `gorm:"size:120;not null"`
	Weight   Grams  `gorm:"not null"` // grams
	Protein  Grams  `gorm:"not null"`
	Carbs    Grams  `gorm:"not null"`
	Fat      Grams  `gorm:"not null"`
	Calories Grams  `gorm:"not null"`
	UserID   uint   `gorm:"index;not null"`
}
