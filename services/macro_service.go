package services

import (
	"errors"
	"time"

	"github.com/liyunrui/meal-prep/models"

	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("food entry not found")

type MacroService struct {
	db *gorm.DB
}

func NewMacroService(db *gorm.DB) *MacroService {
	return &MacroService{db: db}
}

// MacroTotals aggregates a list of food entries.
type MacroTotals struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
}

// AddEntry persists a food entry for the user. The owning user always
// comes from the session, never from the form.
func (s *MacroService) AddEntry(userID uint, entry *models.FoodEntry) error {
	entry.UserID = userID
	return s.db.Create(entry).Error
}

// ListEntries returns the user's full entry history, oldest first.
func (s *MacroService) ListEntries(userID uint) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.Where("user_id = ?", userID).Order("created_at, id").Find(&entries).Error
	return entries, err
}

// ListEntriesForDay returns the user's entries logged within the
// calendar day containing t.
func (s *MacroService) ListEntriesForDay(userID uint, t time.Time) ([]models.FoodEntry, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24 * time.Hour)

	var entries []models.FoodEntry
	err := s.db.
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at, id").
		Find(&entries).Error
	return entries, err
}

// DeleteEntryByName removes the user's oldest entry with that name.
// Other entries sharing the name are left untouched.
func (s *MacroService) DeleteEntryByName(userID uint, name string) error {
	var entry models.FoodEntry
	err := s.db.Where("user_id = ? AND name = ?", userID, name).Order("id").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		return err
	}
	return s.db.Delete(&entry).Error
}

// RenameEntry renames the user's oldest entry matching oldName.
func (s *MacroService) RenameEntry(userID uint, oldName, newName string) error {
	var entry models.FoodEntry
	err := s.db.Where("user_id = ? AND name = ?", userID, oldName).Order("id").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		return err
	}
	return s.db.Model(&entry).Update("name", newName).Error
}

// ComputeDailyTotals sums the macro columns of the given entries.
// Legacy rows with non-numeric column values already scanned to 0, so
// they contribute nothing rather than poisoning the sum.
func ComputeDailyTotals(entries []models.FoodEntry) MacroTotals {
	var totals MacroTotals
	for _, e := range entries {
		totals.Protein += float64(e.Protein)
		totals.Carbs += float64(e.Carbs)
		totals.Fat += float64(e.Fat)
		totals.Calories += float64(e.Calories)
	}
	return totals
}
