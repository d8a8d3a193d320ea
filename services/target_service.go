package services

import (
	"errors"

	"github.com/liyunrui/meal-prep/models"

	"gorm.io/gorm"
)

type TargetService struct {
	db *gorm.DB
}

func NewTargetService(db *gorm.DB) *TargetService {
	return &TargetService{db: db}
}

// AddTarget persists a new target snapshot. Snapshots are never
// updated in place; history accumulates.
func (s *TargetService) AddTarget(userID uint, target *models.TdeeTarget) error {
	target.UserID = userID
	return s.db.Create(target).Error
}

// CurrentTarget returns the user's most recent target snapshot, or nil
// when no target has been saved yet.
func (s *TargetService) CurrentTarget(userID uint) (*models.TdeeTarget, error) {
	var target models.TdeeTarget
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}
