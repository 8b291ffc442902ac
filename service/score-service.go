package service

import (
	"encoding/json"
	"fmt"

	"pageant/config"
	"pageant/repository"
)

// ScoreSubmission is one judge-entered value for a leaf criterion.
type ScoreSubmission struct {
	ContestantId int     `json:"contestantId" binding:"required"`
	CriterionId  int     `json:"criterionId" binding:"required"`
	Value        float64 `json:"value"`
}

type ScoreService struct {
	scoreRepository     *repository.ScoreRepository
	eventRepository     *repository.EventRepository
	criterionRepository *repository.CriterionRepository
}

func NewScoreService() *ScoreService {
	return &ScoreService{
		scoreRepository:     repository.NewScoreRepository(),
		eventRepository:     repository.NewEventRepository(),
		criterionRepository: repository.NewCriterionRepository(),
	}
}

func (e *ScoreService) GetScoresForEvent(eventId int, phase *repository.Phase) ([]*repository.Score, error) {
	return e.scoreRepository.GetScoresForEvent(eventId, phase)
}

func (e *ScoreService) GetScoresForJudge(judgeId int, eventId int, phase repository.Phase) ([]*repository.Score, error) {
	return e.scoreRepository.GetScoresForJudge(judgeId, eventId, phase)
}

// SubmitScores replaces a judge's score sheet for the event's current
// phase. The whole sheet is validated and written atomically; a single
// bad value rejects the submission instead of clamping it.
func (e *ScoreService) SubmitScores(judgeId int, eventId int, submissions []*ScoreSubmission) ([]*repository.Score, error) {
	event, err := e.eventRepository.GetEventById(eventId, "Judges", "Contestants")
	if err != nil {
		return nil, err
	}
	var judge *repository.Judge
	for _, candidate := range event.Judges {
		if candidate.Id == judgeId {
			judge = candidate
		}
	}
	if judge == nil {
		return nil, fmt.Errorf("judge %d is not on the panel of event %d", judgeId, eventId)
	}
	phase := event.CurrentPhase
	if judge.LockedFor(phase) {
		return nil, fmt.Errorf("judge %d is locked for the %s phase", judgeId, phase)
	}

	criteria, err := e.criterionRepository.GetCriteriaForEvent(eventId, &phase)
	if err != nil {
		return nil, err
	}
	criterionById := make(map[int]*repository.Criterion, len(criteria))
	for _, criterion := range criteria {
		criterionById[criterion.Id] = criterion
	}
	contestantById := make(map[int]*repository.Contestant, len(event.Contestants))
	for _, contestant := range event.Contestants {
		contestantById[contestant.Id] = contestant
	}

	type sheetKey struct{ contestantId, criterionId int }
	sheet := make(map[sheetKey]float64)
	for _, submission := range submissions {
		criterion, ok := criterionById[submission.CriterionId]
		if !ok {
			return nil, fmt.Errorf("criterion %d does not exist in the %s phase", submission.CriterionId, phase)
		}
		if !criterion.IsLeaf() {
			return nil, fmt.Errorf("criterion %d is a grouping and cannot be scored", submission.CriterionId)
		}
		if _, ok := contestantById[submission.ContestantId]; !ok {
			return nil, fmt.Errorf("contestant %d does not exist in event %d", submission.ContestantId, eventId)
		}
		if submission.Value < 0 || submission.Value > criterion.Weight {
			return nil, fmt.Errorf("score %f for criterion %d is outside [0, %f]",
				submission.Value, submission.CriterionId, criterion.Weight)
		}
		sheet[sheetKey{submission.ContestantId, submission.CriterionId}] = submission.Value
	}

	// auto-assigned criteria are always granted at full weight
	for _, criterion := range criteria {
		if !criterion.AutoAssign || !criterion.IsLeaf() {
			continue
		}
		for _, contestant := range event.Contestants {
			sheet[sheetKey{contestant.Id, criterion.Id}] = criterion.Weight
		}
	}

	scores := make([]*repository.Score, 0, len(sheet))
	for key, value := range sheet {
		scores = append(scores, &repository.Score{
			ContestantId: key.contestantId,
			CriterionId:  key.criterionId,
			Value:        value,
		})
	}
	if err := e.scoreRepository.ReplaceJudgeScores(judgeId, eventId, phase, scores); err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(map[string]any{
		"judgeId": judgeId,
		"phase":   phase,
		"scores":  scores,
	}); err == nil {
		config.PublishAuditRecord(eventId, "scores-replaced", payload)
	}
	return scores, nil
}
