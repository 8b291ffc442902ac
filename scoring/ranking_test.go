package scoring

import (
	"testing"

	"pageant/repository"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionRanksSkipAfterTiedBlock(t *testing.T) {
	totals := []Total{
		{ContestantId: 1, Value: 90},
		{ContestantId: 2, Value: 85},
		{ContestantId: 3, Value: 85},
		{ContestantId: 4, Value: 80},
	}

	ranks := CompetitionRanks(totals, true)

	assert.Equal(t, 1, ranks[1])
	assert.Equal(t, 2, ranks[2])
	assert.Equal(t, 2, ranks[3])
	// the two-way tie at rank 2 skips rank 3
	assert.Equal(t, 4, ranks[4])
}

func TestCompetitionRanksAscending(t *testing.T) {
	totals := []Total{
		{ContestantId: 1, Value: 5},
		{ContestantId: 2, Value: 7},
		{ContestantId: 3, Value: 7},
		{ContestantId: 4, Value: 9},
	}

	ranks := CompetitionRanks(totals, false)

	assert.Equal(t, 1, ranks[1])
	assert.Equal(t, 2, ranks[2])
	assert.Equal(t, 2, ranks[3])
	assert.Equal(t, 4, ranks[4])
}

func TestCompetitionRanksAllTied(t *testing.T) {
	totals := []Total{
		{ContestantId: 1, Value: 50},
		{ContestantId: 2, Value: 50},
		{ContestantId: 3, Value: 50},
	}

	ranks := CompetitionRanks(totals, true)

	for id := 1; id <= 3; id++ {
		assert.Equal(t, 1, ranks[id])
	}
}

func TestComputeRankTable(t *testing.T) {
	contestants := []*repository.Contestant{
		{Id: 1, Number: 1},
		{Id: 2, Number: 2},
		{Id: 3, Number: 3},
	}
	judges := []*repository.Judge{
		{Id: 10, Number: 1},
		{Id: 20, Number: 2},
	}
	leaves := map[int]bool{100: true}
	scores := []ScoreRecord{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 9},
		{JudgeId: 10, ContestantId: 2, CriterionId: 100, Value: 8},
		{JudgeId: 10, ContestantId: 3, CriterionId: 100, Value: 7},
		{JudgeId: 20, ContestantId: 1, CriterionId: 100, Value: 8},
		{JudgeId: 20, ContestantId: 2, CriterionId: 100, Value: 9},
		{JudgeId: 20, ContestantId: 3, CriterionId: 100, Value: 7},
	}

	rows := ComputeRankTable(contestants, judges, scores, leaves)

	assert.Len(t, rows, 3)
	// contestants 1 and 2 swap first place between the judges
	assert.Equal(t, 1, rows[0].Contestant.Id)
	assert.Equal(t, 2, rows[1].Contestant.Id)
	assert.Equal(t, 3, rows[2].Contestant.Id)

	assert.Equal(t, 1, rows[0].JudgeRanks[10])
	assert.Equal(t, 2, rows[0].JudgeRanks[20])
	assert.Equal(t, 3, rows[0].TotalRank)
	assert.Equal(t, 3, rows[1].TotalRank)
	assert.Equal(t, 6, rows[2].TotalRank)

	// tied total ranks share first place and the next one skips to third
	assert.Equal(t, 1, rows[0].FinalRank)
	assert.Equal(t, 1, rows[1].FinalRank)
	assert.Equal(t, 3, rows[2].FinalRank)

	assert.Equal(t, 17.0, rows[0].TotalScore)
	assert.Equal(t, 17.0, rows[1].TotalScore)
	assert.Equal(t, 14.0, rows[2].TotalScore)
}

func TestComputeRankTableUnscoredJudge(t *testing.T) {
	contestants := []*repository.Contestant{
		{Id: 1, Number: 1},
		{Id: 2, Number: 2},
	}
	judges := []*repository.Judge{
		{Id: 10, Number: 1},
		{Id: 20, Number: 2},
	}
	leaves := map[int]bool{100: true}
	scores := []ScoreRecord{
		{JudgeId: 10, ContestantId: 1, CriterionId: 100, Value: 5},
		{JudgeId: 10, ContestantId: 2, CriterionId: 100, Value: 3},
	}

	rows := ComputeRankTable(contestants, judges, scores, leaves)

	// judge 20 never scored, so both contestants tie at zero for them
	assert.Equal(t, 1, rows[0].JudgeRanks[20])
	assert.Equal(t, 1, rows[1].JudgeRanks[20])
	assert.Equal(t, 2, rows[0].TotalRank)
	assert.Equal(t, 3, rows[1].TotalRank)
}
