package service

import (
	"fmt"

	"pageant/repository"
)

type CriterionService struct {
	criterionRepository *repository.CriterionRepository
}

func NewCriterionService() *CriterionService {
	return &CriterionService{
		criterionRepository: repository.NewCriterionRepository(),
	}
}

func (e *CriterionService) GetCriteriaForEvent(eventId int, phase *repository.Phase) ([]*repository.Criterion, error) {
	return e.criterionRepository.GetCriteriaForEvent(eventId, phase)
}

func (e *CriterionService) GetCriterionById(criterionId int) (*repository.Criterion, error) {
	return e.criterionRepository.GetCriterionById(criterionId)
}

// SaveCriterion validates the two-level criterion tree: only leaves
// carry weights, and a parent must be a top-level criterion of the
// same event and phase.
func (e *CriterionService) SaveCriterion(criterion *repository.Criterion) (*repository.Criterion, error) {
	if criterion.Weight < 0 || criterion.Weight > 100 {
		return nil, fmt.Errorf("criterion weight %f is out of range", criterion.Weight)
	}
	if criterion.ParentId != nil {
		parent, err := e.criterionRepository.GetCriterionById(*criterion.ParentId)
		if err != nil {
			return nil, fmt.Errorf("parent criterion not found: %w", err)
		}
		if parent.EventId != criterion.EventId || parent.Phase != criterion.Phase {
			return nil, fmt.Errorf("parent criterion belongs to a different event or phase")
		}
		if parent.ParentId != nil {
			return nil, fmt.Errorf("criteria cannot nest deeper than two levels")
		}
	}
	return e.criterionRepository.Save(criterion)
}

func (e *CriterionService) DeleteCriterion(criterionId int) error {
	return e.criterionRepository.Delete(criterionId)
}
