package repository

import (
	"fmt"

	"pageant/config"

	"gorm.io/gorm"
)

// Criterion is a node in the per-event criterion tree. Top-level
// criteria (ParentId == nil) are report groupings; only leaf
// sub-criteria carry a weight and receive scores.
type Criterion struct {
	Id         int          `gorm:"primaryKey"`
	EventId    int          `gorm:"not null;index"`
	Name       string       `gorm:"not null"`
	Identifier *string      `gorm:"null"`
	Phase      Phase        `gorm:"not null;default:PRELIMINARY"`
	Weight     float64      `gorm:"not null;default:0"`
	AutoAssign bool         `gorm:"not null;default:false"`
	ParentId   *int         `gorm:"null"`
	Children   []*Criterion `gorm:"foreignKey:ParentId;constraint:OnDelete:CASCADE"`
}

func (c *Criterion) IsLeaf() bool {
	return c.ParentId != nil
}

type CriterionRepository struct {
	DB *gorm.DB
}

func NewCriterionRepository() *CriterionRepository {
	return &CriterionRepository{DB: config.DatabaseConnection()}
}

func (r *CriterionRepository) GetCriterionById(criterionId int) (*Criterion, error) {
	var criterion Criterion
	result := r.DB.First(&criterion, criterionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &criterion, nil
}

func (r *CriterionRepository) GetCriteriaForEvent(eventId int, phase *Phase) ([]*Criterion, error) {
	var criteria []*Criterion
	query := r.DB.Where("event_id = ?", eventId)
	if phase != nil {
		query = query.Where("phase = ?", *phase)
	}
	result := query.Order("id ASC").Find(&criteria)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find criteria: %w", result.Error)
	}
	return criteria, nil
}

func (r *CriterionRepository) Save(criterion *Criterion) (*Criterion, error) {
	result := r.DB.Save(criterion)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save criterion: %w", result.Error)
	}
	return criterion, nil
}

// Delete removes the criterion, its children and all scores recorded
// against those leaves.
func (r *CriterionRepository) Delete(criterionId int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var childIds []int
		if err := tx.Model(&Criterion{}).Where("parent_id = ?", criterionId).Pluck("id", &childIds).Error; err != nil {
			return err
		}
		ids := append(childIds, criterionId)
		if err := tx.Where("criterion_id IN ?", ids).Delete(&Score{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", criterionId).Delete(&Criterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Criterion{}, criterionId).Error
	})
}
