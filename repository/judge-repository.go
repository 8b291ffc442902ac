package repository

import (
	"fmt"

	"pageant/config"

	"gorm.io/gorm"
)

// Judge number 1 is conventionally the chief judge. That is a display
// convention only, nothing in the tabulation treats it specially.
type Judge struct {
	Id                int    `gorm:"primaryKey"`
	EventId           int    `gorm:"not null;index"`
	Number            int    `gorm:"not null"`
	Name              string `gorm:"not null"`
	AccessCode        string `gorm:"not null"`
	LockedPreliminary bool   `gorm:"not null;default:false"`
	LockedFinal       bool   `gorm:"not null;default:false"`
}

func (j *Judge) LockedFor(phase Phase) bool {
	if phase == PhaseFinal {
		return j.LockedFinal
	}
	return j.LockedPreliminary
}

type JudgeRepository struct {
	DB *gorm.DB
}

func NewJudgeRepository() *JudgeRepository {
	return &JudgeRepository{DB: config.DatabaseConnection()}
}

func (r *JudgeRepository) GetJudgeById(judgeId int) (*Judge, error) {
	var judge Judge
	result := r.DB.First(&judge, judgeId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &judge, nil
}

func (r *JudgeRepository) GetJudgesForEvent(eventId int) ([]*Judge, error) {
	var judges []*Judge
	result := r.DB.Where("event_id = ?", eventId).Order("number ASC").Find(&judges)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find judges: %w", result.Error)
	}
	return judges, nil
}

func (r *JudgeRepository) Save(judge *Judge) (*Judge, error) {
	result := r.DB.Save(judge)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save judge: %w", result.Error)
	}
	return judge, nil
}

func (r *JudgeRepository) SetLock(judgeId int, phase Phase, locked bool) (*Judge, error) {
	judge, err := r.GetJudgeById(judgeId)
	if err != nil {
		return nil, err
	}
	column := "locked_preliminary"
	if phase == PhaseFinal {
		column = "locked_final"
	}
	result := r.DB.Model(judge).Update(column, locked)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update judge lock: %w", result.Error)
	}
	return judge, nil
}

func (r *JudgeRepository) Delete(judgeId int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("judge_id = ?", judgeId).Delete(&Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Judge{}, judgeId).Error
	})
}
