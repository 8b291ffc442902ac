package service

import (
	"fmt"

	"pageant/repository"
)

type JudgeService struct {
	judgeRepository *repository.JudgeRepository
	eventRepository *repository.EventRepository
}

func NewJudgeService() *JudgeService {
	return &JudgeService{
		judgeRepository: repository.NewJudgeRepository(),
		eventRepository: repository.NewEventRepository(),
	}
}

func (e *JudgeService) GetJudgesForEvent(eventId int) ([]*repository.Judge, error) {
	return e.judgeRepository.GetJudgesForEvent(eventId)
}

func (e *JudgeService) GetJudgeById(judgeId int) (*repository.Judge, error) {
	return e.judgeRepository.GetJudgeById(judgeId)
}

func (e *JudgeService) SaveJudge(judge *repository.Judge) (*repository.Judge, error) {
	if judge.AccessCode == "" {
		return nil, fmt.Errorf("judge needs an access code")
	}
	existing, err := e.judgeRepository.GetJudgesForEvent(judge.EventId)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Id != judge.Id && other.Number == judge.Number {
			return nil, fmt.Errorf("judge number %d is already taken", judge.Number)
		}
	}
	return e.judgeRepository.Save(judge)
}

func (e *JudgeService) DeleteJudge(judgeId int) error {
	return e.judgeRepository.Delete(judgeId)
}

// SetLock flips a judge's submission lock for one phase. A locked
// judge's scores are frozen until an admin unlocks them again.
func (e *JudgeService) SetLock(judgeId int, phase repository.Phase, locked bool) (*repository.Judge, error) {
	return e.judgeRepository.SetLock(judgeId, phase, locked)
}

// GetJudgeByAccessCode resolves a login attempt against the active
// event's judge roster.
func (e *JudgeService) GetJudgeByAccessCode(accessCode string) (*repository.Judge, error) {
	event, err := e.eventRepository.GetActiveEvent("Judges")
	if err != nil {
		return nil, err
	}
	for _, judge := range event.Judges {
		if judge.AccessCode == accessCode {
			return judge, nil
		}
	}
	return nil, fmt.Errorf("invalid access code")
}
