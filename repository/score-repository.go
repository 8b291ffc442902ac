package repository

import (
	"fmt"

	"pageant/config"

	"gorm.io/gorm"
)

type Score struct {
	Id           int     `gorm:"primaryKey"`
	EventId      int     `gorm:"not null;index"`
	Phase        Phase   `gorm:"not null;uniqueIndex:idx_score_natural"`
	JudgeId      int     `gorm:"not null;uniqueIndex:idx_score_natural"`
	ContestantId int     `gorm:"not null;uniqueIndex:idx_score_natural"`
	CriterionId  int     `gorm:"not null;uniqueIndex:idx_score_natural"`
	Value        float64 `gorm:"not null"`
}

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{DB: config.DatabaseConnection()}
}

func (r *ScoreRepository) GetScoresForEvent(eventId int, phase *Phase) ([]*Score, error) {
	var scores []*Score
	query := r.DB.Where("event_id = ?", eventId)
	if phase != nil {
		query = query.Where("phase = ?", *phase)
	}
	result := query.Find(&scores)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find scores: %w", result.Error)
	}
	return scores, nil
}

func (r *ScoreRepository) GetScoresForJudge(judgeId int, eventId int, phase Phase) ([]*Score, error) {
	var scores []*Score
	result := r.DB.Where("judge_id = ? AND event_id = ? AND phase = ?", judgeId, eventId, phase).Find(&scores)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find scores: %w", result.Error)
	}
	return scores, nil
}

// ReplaceJudgeScores swaps out a judge's score sheet for an event phase
// as a whole unit. Delete and insert run in one transaction so a
// concurrent reader never observes the empty intermediate state.
func (r *ScoreRepository) ReplaceJudgeScores(judgeId int, eventId int, phase Phase, scores []*Score) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("judge_id = ? AND event_id = ? AND phase = ?", judgeId, eventId, phase).Delete(&Score{}).Error; err != nil {
			return err
		}
		if len(scores) == 0 {
			return nil
		}
		for _, score := range scores {
			score.JudgeId = judgeId
			score.EventId = eventId
			score.Phase = phase
		}
		return tx.Create(scores).Error
	})
}
