package service

import (
	"fmt"

	"pageant/repository"
)

type ContestantService struct {
	contestantRepository *repository.ContestantRepository
	eventRepository      *repository.EventRepository
}

func NewContestantService() *ContestantService {
	return &ContestantService{
		contestantRepository: repository.NewContestantRepository(),
		eventRepository:      repository.NewEventRepository(),
	}
}

func (e *ContestantService) GetContestantsForEvent(eventId int) ([]*repository.Contestant, error) {
	return e.contestantRepository.GetContestantsForEvent(eventId)
}

func (e *ContestantService) GetContestantById(contestantId int) (*repository.Contestant, error) {
	return e.contestantRepository.GetContestantById(contestantId)
}

func (e *ContestantService) SaveContestant(contestant *repository.Contestant) (*repository.Contestant, error) {
	event, err := e.eventRepository.GetEventById(contestant.EventId, "Contestants")
	if err != nil {
		return nil, err
	}
	if event.SeparateGenders && contestant.Sex == nil {
		return nil, fmt.Errorf("contestant needs a sex when the event separates genders")
	}
	for _, other := range event.Contestants {
		if other.Id != contestant.Id && other.Number == contestant.Number {
			return nil, fmt.Errorf("contestant number %d is already taken", contestant.Number)
		}
	}
	return e.contestantRepository.Save(contestant)
}

func (e *ContestantService) DeleteContestant(contestantId int) error {
	return e.contestantRepository.Delete(contestantId)
}
