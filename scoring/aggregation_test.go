package scoring

import (
	"testing"

	"pageant/repository"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func TestLeafCriteria(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Talent"},
		{Id: 2, Name: "Execution", ParentId: intPtr(1), Weight: 30},
		{Id: 3, Name: "Stage Presence", ParentId: intPtr(1), Weight: 20},
		{Id: 4, Name: "Interview"},
		{Id: 5, Name: "Wit", ParentId: intPtr(4), Weight: 50},
	}

	leaves := LeafCriteria(criteria, nil)
	assert.Equal(t, map[int]bool{2: true, 3: true, 5: true}, leaves)

	talentLeaves := LeafCriteria(criteria, intPtr(1))
	assert.Equal(t, map[int]bool{2: true, 3: true}, talentLeaves)
}

func TestJudgeTotalsZeroFill(t *testing.T) {
	judges := []*repository.Judge{{Id: 10}, {Id: 20}}
	contestants := []*repository.Contestant{{Id: 1}, {Id: 2}}
	leaves := map[int]bool{100: true}
	scores := []ScoreRecord{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 7},
	}

	totals := JudgeTotals(judges, contestants, scores, leaves)

	assert.Equal(t, 7.0, totals[10][1])
	assert.Equal(t, 0.0, totals[10][2])
	assert.Equal(t, 0.0, totals[20][1])
	assert.Equal(t, 0.0, totals[20][2])
}

func TestJudgeTotalsIgnoresNonLeafScores(t *testing.T) {
	judges := []*repository.Judge{{Id: 10}}
	contestants := []*repository.Contestant{{Id: 1}}
	leaves := map[int]bool{100: true}
	scores := []ScoreRecord{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 7},
		{JudgeId: 10, ContestantId: 1, CriterionId: 999, Value: 50},
	}

	totals := JudgeTotals(judges, contestants, scores, leaves)

	assert.Equal(t, 7.0, totals[10][1])
}

func TestStandingsAverageOverScoringJudges(t *testing.T) {
	judges := []*repository.Judge{{Id: 10}, {Id: 20}, {Id: 30}}
	contestants := []*repository.Contestant{{Id: 1}, {Id: 2}}
	leaves := map[int]bool{100: true}
	// only two of the three judges scored contestant 1
	scores := []ScoreRecord{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 8},
		{JudgeId: 20, ContestantId: 1, CriterionId: 100, Value: 6},
	}

	standings := Standings(contestants, judges, scores, leaves)

	assert.Equal(t, 1, standings[0].Contestant.Id)
	assert.Equal(t, 14.0, standings[0].Total)
	assert.Equal(t, 7.0, standings[0].Average)

	// nobody scored contestant 2
	assert.Equal(t, 0.0, standings[1].Total)
	assert.Equal(t, 0.0, standings[1].Average)
}

func TestStandingsIgnoresScoresFromRemovedJudges(t *testing.T) {
	judges := []*repository.Judge{{Id: 10}}
	contestants := []*repository.Contestant{{Id: 1}}
	leaves := map[int]bool{100: true}
	// judge 99 is no longer on the panel but left a score row behind
	scores := []ScoreRecord{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 8},
		{JudgeId: 99, ContestantId: 1, CriterionId: 100, Value: 8},
	}

	standings := Standings(contestants, judges, scores, leaves)

	assert.Equal(t, 8.0, standings[0].Total)
	assert.Equal(t, 8.0, standings[0].Average)
}

func TestFromScores(t *testing.T) {
	records := FromScores([]*repository.Score{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 4.5},
	})

	assert.Len(t, records, 1)
	assert.Equal(t, ScoreRecord{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 4.5}, records[0])
}
