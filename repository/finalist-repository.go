package repository

import (
	"fmt"

	"pageant/config"

	"gorm.io/gorm"
)

// ManualFinalistSelection is one (event, contestant) pair of an admin's
// explicit tie resolution. The set is always replaced whole.
type ManualFinalistSelection struct {
	Id           int `gorm:"primaryKey"`
	EventId      int `gorm:"not null;uniqueIndex:idx_manual_finalist"`
	ContestantId int `gorm:"not null;uniqueIndex:idx_manual_finalist"`
}

type ManualFinalistRepository struct {
	DB *gorm.DB
}

func NewManualFinalistRepository() *ManualFinalistRepository {
	return &ManualFinalistRepository{DB: config.DatabaseConnection()}
}

func (r *ManualFinalistRepository) GetSelectionsForEvent(eventId int) ([]*ManualFinalistSelection, error) {
	var selections []*ManualFinalistSelection
	result := r.DB.Where("event_id = ?", eventId).Find(&selections)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find manual finalist selections: %w", result.Error)
	}
	return selections, nil
}

// ReplaceSelections drops the event's selection set and writes the new
// one in a single transaction.
func (r *ManualFinalistRepository) ReplaceSelections(eventId int, contestantIds []int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventId).Delete(&ManualFinalistSelection{}).Error; err != nil {
			return err
		}
		if len(contestantIds) == 0 {
			return nil
		}
		selections := make([]*ManualFinalistSelection, 0, len(contestantIds))
		for _, contestantId := range contestantIds {
			selections = append(selections, &ManualFinalistSelection{
				EventId:      eventId,
				ContestantId: contestantId,
			})
		}
		return tx.Create(selections).Error
	})
}
