package service

import (
	"fmt"

	"pageant/config"
	"pageant/repository"
)

var ErrUnresolvedTies = fmt.Errorf("finalist ties are not resolved yet")

type EventService struct {
	eventRepository *repository.EventRepository
	resultService   *ResultService
}

func NewEventService() *EventService {
	return &EventService{
		eventRepository: repository.NewEventRepository(),
		resultService:   NewResultService(),
	}
}

func (e *EventService) GetAllEvents() ([]*repository.Event, error) {
	return e.eventRepository.FindAll()
}

func (e *EventService) GetEventById(eventId int, preloads ...string) (*repository.Event, error) {
	return e.eventRepository.GetEventById(eventId, preloads...)
}

func (e *EventService) GetActiveEvent(preloads ...string) (*repository.Event, error) {
	return e.eventRepository.GetActiveEvent(preloads...)
}

func (e *EventService) CreateEvent(event *repository.Event) (*repository.Event, error) {
	if event.CurrentPhase == "" {
		event.CurrentPhase = repository.PhasePreliminary
	}
	if event.Status == "" {
		event.Status = repository.EventStatusActive
	}
	if !event.HasTwoPhases {
		event.FinalistsCount = 0
	}
	event, err := e.eventRepository.Save(event)
	if err != nil {
		return nil, err
	}
	if err := config.CreateAuditTopic(event.Id); err != nil {
		fmt.Printf("failed to create audit topic for event %d: %v\n", event.Id, err)
	}
	return event, nil
}

func (e *EventService) UpdateEvent(event *repository.Event) (*repository.Event, error) {
	return e.eventRepository.Save(event)
}

func (e *EventService) DeleteEvent(eventId int) error {
	return e.eventRepository.Delete(eventId)
}

// AdvancePhase moves the event into the given phase. Moving to FINAL is
// refused while a manual tie break is outstanding, and moving back to
// PRELIMINARY is never allowed since final scores would orphan.
func (e *EventService) AdvancePhase(eventId int, phase repository.Phase) (*repository.Event, bool, error) {
	event, err := e.eventRepository.GetEventById(eventId, "Judges", "Contestants")
	if err != nil {
		return nil, false, err
	}
	if event.CurrentPhase == phase {
		return event, false, nil
	}
	if !event.HasTwoPhases {
		return nil, false, fmt.Errorf("event %d has a single phase", eventId)
	}
	if phase == repository.PhasePreliminary {
		return nil, false, fmt.Errorf("cannot return event %d to the preliminary phase", eventId)
	}
	unresolved, err := e.resultService.HasUnresolvedTies(event)
	if err != nil {
		return nil, false, err
	}
	if unresolved {
		return nil, false, ErrUnresolvedTies
	}
	if err := e.eventRepository.UpdatePhase(eventId, phase); err != nil {
		return nil, false, err
	}
	event.CurrentPhase = phase
	return event, true, nil
}
