package repository

import (
	"fmt"

	"pageant/config"

	"gorm.io/gorm"
)

type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

type Contestant struct {
	Id      int    `gorm:"primaryKey"`
	EventId int    `gorm:"not null;index"`
	Number  int    `gorm:"not null"`
	Name    string `gorm:"not null"`
	Sex     *Sex   `gorm:"null"`
}

type ContestantRepository struct {
	DB *gorm.DB
}

func NewContestantRepository() *ContestantRepository {
	return &ContestantRepository{DB: config.DatabaseConnection()}
}

func (r *ContestantRepository) GetContestantById(contestantId int) (*Contestant, error) {
	var contestant Contestant
	result := r.DB.First(&contestant, contestantId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &contestant, nil
}

func (r *ContestantRepository) GetContestantsForEvent(eventId int) ([]*Contestant, error) {
	var contestants []*Contestant
	result := r.DB.Where("event_id = ?", eventId).Order("number ASC").Find(&contestants)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find contestants: %w", result.Error)
	}
	return contestants, nil
}

func (r *ContestantRepository) Save(contestant *Contestant) (*Contestant, error) {
	result := r.DB.Save(contestant)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save contestant: %w", result.Error)
	}
	return contestant, nil
}

// Delete removes the contestant together with its scores and any
// manual finalist selection referencing it.
func (r *ContestantRepository) Delete(contestantId int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contestant_id = ?", contestantId).Delete(&Score{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contestant_id = ?", contestantId).Delete(&ManualFinalistSelection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Contestant{}, contestantId).Error
	})
}
