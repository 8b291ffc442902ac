package service

import (
	"encoding/json"
	"fmt"

	"pageant/config"
	"pageant/repository"
	"pageant/scoring"
)

type FinalistService struct {
	finalistRepository *repository.ManualFinalistRepository
	eventRepository    *repository.EventRepository
}

func NewFinalistService() *FinalistService {
	return &FinalistService{
		finalistRepository: repository.NewManualFinalistRepository(),
		eventRepository:    repository.NewEventRepository(),
	}
}

func (e *FinalistService) GetSelectionsForEvent(eventId int) ([]*repository.ManualFinalistSelection, error) {
	return e.finalistRepository.GetSelectionsForEvent(eventId)
}

// SaveSelections replaces the admin's manual finalist picks. The set
// must match the configured finalist count, per bracket when genders
// compete separately.
func (e *FinalistService) SaveSelections(eventId int, contestantIds []int) error {
	event, err := e.eventRepository.GetEventById(eventId, "Contestants")
	if err != nil {
		return err
	}
	if !event.HasTwoPhases {
		return fmt.Errorf("event %d has a single phase", eventId)
	}
	if event.TieBreakingStrategy != repository.TieBreakManualSelection {
		return fmt.Errorf("event %d does not use manual finalist selection", eventId)
	}
	if event.CurrentPhase != repository.PhasePreliminary {
		return fmt.Errorf("finalists can only be picked during the preliminary phase")
	}
	contestantById := make(map[int]*repository.Contestant, len(event.Contestants))
	for _, contestant := range event.Contestants {
		contestantById[contestant.Id] = contestant
	}
	seen := make(map[int]bool, len(contestantIds))
	picked := make([]*repository.Contestant, 0, len(contestantIds))
	for _, id := range contestantIds {
		contestant, ok := contestantById[id]
		if !ok {
			return fmt.Errorf("contestant %d does not exist in event %d", id, eventId)
		}
		if seen[id] {
			return fmt.Errorf("contestant %d is selected twice", id)
		}
		seen[id] = true
		picked = append(picked, contestant)
	}
	for _, bracket := range scoring.SplitBrackets(picked, event.SeparateGenders) {
		if !bracket.Competitive {
			if len(bracket.Contestants) > 0 {
				return fmt.Errorf("contestants in the %s bracket cannot be finalists", bracket.Label)
			}
			continue
		}
		if len(bracket.Contestants) != event.FinalistsCount {
			return fmt.Errorf("the %s bracket needs exactly %d finalists, got %d",
				bracket.Label, event.FinalistsCount, len(bracket.Contestants))
		}
	}
	if err := e.finalistRepository.ReplaceSelections(eventId, contestantIds); err != nil {
		return err
	}
	if payload, err := json.Marshal(map[string]any{"contestantIds": contestantIds}); err == nil {
		config.PublishAuditRecord(eventId, "finalists-selected", payload)
	}
	return nil
}
