package service

import (
	"fmt"

	"pageant/repository"
	"pageant/scoring"
	"pageant/utils"
)

// BracketRanking is the full rank table for one bracket of an event.
type BracketRanking struct {
	Label       string            `json:"label"`
	Competitive bool              `json:"competitive"`
	Rows        []scoring.RankRow `json:"rows"`
}

// BracketFinalists is the finalist selection outcome for one bracket.
type BracketFinalists struct {
	Label       string                 `json:"label"`
	Competitive bool                   `json:"competitive"`
	Result      scoring.FinalistResult `json:"result"`
}

// CategoryRanking holds per-contestant standings restricted to the
// subtree of one top-level criterion (a named award category).
type CategoryRanking struct {
	CriterionId int                `json:"criterionId"`
	Label       string             `json:"label"`
	Standings   []scoring.Standing `json:"standings"`
	Ranks       map[int]int        `json:"ranks"`
}

type ResultService struct {
	eventRepository     *repository.EventRepository
	criterionRepository *repository.CriterionRepository
	scoreRepository     *repository.ScoreRepository
	finalistRepository  *repository.ManualFinalistRepository
}

func NewResultService() *ResultService {
	return &ResultService{
		eventRepository:     repository.NewEventRepository(),
		criterionRepository: repository.NewCriterionRepository(),
		scoreRepository:     repository.NewScoreRepository(),
		finalistRepository:  repository.NewManualFinalistRepository(),
	}
}

type phaseInputs struct {
	criteria []*repository.Criterion
	scores   []scoring.ScoreRecord
	leaves   map[int]bool
}

func (s *ResultService) loadPhase(event *repository.Event, phase repository.Phase) (*phaseInputs, error) {
	criteria, err := s.criterionRepository.GetCriteriaForEvent(event.Id, &phase)
	if err != nil {
		return nil, err
	}
	rawScores, err := s.scoreRepository.GetScoresForEvent(event.Id, &phase)
	if err != nil {
		return nil, err
	}
	return &phaseInputs{
		criteria: criteria,
		scores:   scoring.FromScores(rawScores),
		leaves:   scoring.LeafCriteria(criteria, nil),
	}, nil
}

// eligibleContestants returns the contestants that compete in the given
// phase. In the final phase of a two-phase event only the finalists
// determined from the preliminary results are eligible.
func (s *ResultService) eligibleContestants(event *repository.Event, phase repository.Phase) ([]*repository.Contestant, error) {
	if phase == repository.PhasePreliminary || !event.HasTwoPhases {
		return event.Contestants, nil
	}
	brackets, err := s.DetermineFinalists(event)
	if err != nil {
		return nil, err
	}
	finalists := make([]*repository.Contestant, 0)
	for _, bracket := range brackets {
		if !bracket.Competitive {
			continue
		}
		for _, standing := range bracket.Result.Finalists {
			finalists = append(finalists, standing.Contestant)
		}
	}
	return finalists, nil
}

// GetRankings computes the full rank table for every bracket of the
// event in the given phase.
func (s *ResultService) GetRankings(eventId int, phase repository.Phase) ([]*BracketRanking, error) {
	event, err := s.eventRepository.GetEventById(eventId, "Judges", "Contestants")
	if err != nil {
		return nil, err
	}
	contestants, err := s.eligibleContestants(event, phase)
	if err != nil {
		return nil, err
	}
	inputs, err := s.loadPhase(event, phase)
	if err != nil {
		return nil, err
	}
	rankings := make([]*BracketRanking, 0)
	for _, bracket := range scoring.SplitBrackets(contestants, event.SeparateGenders) {
		rankings = append(rankings, &BracketRanking{
			Label:       bracket.Label,
			Competitive: bracket.Competitive,
			Rows:        scoring.ComputeRankTable(bracket.Contestants, event.Judges, inputs.scores, inputs.leaves),
		})
	}
	return rankings, nil
}

// DetermineFinalists runs the finalist selection on the preliminary
// results of each bracket.
func (s *ResultService) DetermineFinalists(event *repository.Event) ([]*BracketFinalists, error) {
	if !event.HasTwoPhases {
		return nil, fmt.Errorf("event %d has a single phase", event.Id)
	}
	inputs, err := s.loadPhase(event, repository.PhasePreliminary)
	if err != nil {
		return nil, err
	}
	selections, err := s.finalistRepository.GetSelectionsForEvent(event.Id)
	if err != nil {
		return nil, err
	}
	manualIds := utils.Map(selections, func(sel *repository.ManualFinalistSelection) int { return sel.ContestantId })
	cfg := scoring.FinalistConfig{
		FinalistsCount: event.FinalistsCount,
		Strategy:       event.TieBreakingStrategy,
	}
	results := make([]*BracketFinalists, 0)
	for _, bracket := range scoring.SplitBrackets(event.Contestants, event.SeparateGenders) {
		standings := scoring.Standings(bracket.Contestants, event.Judges, inputs.scores, inputs.leaves)
		members := make(map[int]bool)
		for _, contestant := range bracket.Contestants {
			members[contestant.Id] = true
		}
		bracketManual := utils.Filter(manualIds, func(id int) bool { return members[id] })
		results = append(results, &BracketFinalists{
			Label:       bracket.Label,
			Competitive: bracket.Competitive,
			Result:      scoring.SelectFinalists(standings, cfg, bracketManual),
		})
	}
	return results, nil
}

// HasUnresolvedTies reports whether advancing to the final phase is
// blocked because a manual tie break is still outstanding.
func (s *ResultService) HasUnresolvedTies(event *repository.Event) (bool, error) {
	if !event.HasTwoPhases || event.CurrentPhase != repository.PhasePreliminary {
		return false, nil
	}
	if event.TieBreakingStrategy != repository.TieBreakManualSelection {
		return false, nil
	}
	brackets, err := s.DetermineFinalists(event)
	if err != nil {
		return false, err
	}
	for _, bracket := range brackets {
		if bracket.Competitive && bracket.Result.Unresolved {
			return true, nil
		}
	}
	return false, nil
}

// GetCategoryRankings computes standings and competition ranks per
// top-level criterion, for special awards like "Best in Talent".
func (s *ResultService) GetCategoryRankings(eventId int, phase repository.Phase) ([]*CategoryRanking, error) {
	event, err := s.eventRepository.GetEventById(eventId, "Judges", "Contestants")
	if err != nil {
		return nil, err
	}
	contestants, err := s.eligibleContestants(event, phase)
	if err != nil {
		return nil, err
	}
	inputs, err := s.loadPhase(event, phase)
	if err != nil {
		return nil, err
	}
	rankings := make([]*CategoryRanking, 0)
	for _, criterion := range inputs.criteria {
		if criterion.ParentId != nil {
			continue
		}
		topLevelId := criterion.Id
		leaves := scoring.LeafCriteria(inputs.criteria, &topLevelId)
		standings := scoring.Standings(contestants, event.Judges, inputs.scores, leaves)
		totals := utils.Map(standings, func(st scoring.Standing) scoring.Total {
			return scoring.Total{ContestantId: st.Contestant.Id, Value: st.Total}
		})
		rankings = append(rankings, &CategoryRanking{
			CriterionId: criterion.Id,
			Label:       criterion.Name,
			Standings:   standings,
			Ranks:       scoring.CompetitionRanks(totals, true),
		})
	}
	return rankings, nil
}
