package scoring

import (
	"testing"

	"pageant/repository"

	"github.com/stretchr/testify/assert"
)

func standing(id int, number int, total float64, average float64) Standing {
	return Standing{
		Contestant: &repository.Contestant{Id: id, Number: number},
		Total:      total,
		Average:    average,
	}
}

func TestSelectFinalistsNoTieAtCutoff(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 240, 80),
		standing(4, 4, 225, 75),
		standing(5, 5, 210, 70),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakManualSelection}

	result := SelectFinalists(standings, cfg, nil)

	assert.Equal(t, []int{1, 2, 3}, result.FinalistIds())
	assert.Empty(t, result.TiedGroup)
	assert.False(t, result.Unresolved)
}

func TestSelectFinalistsEveryoneQualifies(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 90, 90),
		standing(2, 2, 85, 85),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakIncludeTies}

	result := SelectFinalists(standings, cfg, nil)

	assert.Equal(t, []int{1, 2}, result.FinalistIds())
	assert.False(t, result.Unresolved)
}

func TestSelectFinalistsIncludeTies(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 240, 80),
		standing(4, 4, 238, 80),
		standing(5, 5, 210, 70),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakIncludeTies}

	result := SelectFinalists(standings, cfg, nil)

	// the tie at the cutoff widens the finalist set
	assert.Equal(t, []int{1, 2, 3, 4}, result.FinalistIds())
	assert.Equal(t, []int{1, 2}, ids(result.Qualified))
	assert.Equal(t, []int{3, 4}, ids(result.TiedGroup))
	assert.False(t, result.Unresolved)
}

func TestSelectFinalistsTotalScoreBreaksTie(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 238, 80),
		standing(4, 4, 240, 80),
		standing(5, 5, 210, 70),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakTotalScore}

	result := SelectFinalists(standings, cfg, nil)

	// contestant 4 wins the tie on the higher raw total
	assert.Equal(t, []int{1, 2, 4}, result.FinalistIds())
	assert.False(t, result.Unresolved)
}

func TestSelectFinalistsContestantNumberBreaksTie(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(4, 4, 240, 80),
		standing(3, 3, 238, 80),
		standing(5, 5, 210, 70),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakContestantNumber}

	result := SelectFinalists(standings, cfg, nil)

	assert.Equal(t, []int{1, 2, 3}, result.FinalistIds())
	assert.False(t, result.Unresolved)
}

func TestSelectFinalistsManualSelectionPending(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 240, 80),
		standing(4, 4, 238, 80),
		standing(5, 5, 210, 70),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakManualSelection}

	result := SelectFinalists(standings, cfg, nil)

	// no valid selection yet: fall back to including the tie and flag it
	assert.True(t, result.Unresolved)
	assert.Equal(t, []int{1, 2, 3, 4}, result.FinalistIds())
}

func TestSelectFinalistsManualSelectionResolved(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 240, 80),
		standing(4, 4, 238, 80),
		standing(5, 5, 210, 70),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakManualSelection}

	result := SelectFinalists(standings, cfg, []int{1, 2, 4})

	assert.False(t, result.Unresolved)
	assert.Equal(t, []int{1, 2, 4}, result.FinalistIds())
}

func TestSelectFinalistsManualSelectionWrongSize(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 240, 80),
		standing(4, 4, 238, 80),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakManualSelection}

	result := SelectFinalists(standings, cfg, []int{1, 2})

	assert.True(t, result.Unresolved)
}

func TestSelectFinalistsManualSelectionUnknownContestant(t *testing.T) {
	standings := []Standing{
		standing(1, 1, 270, 90),
		standing(2, 2, 255, 85),
		standing(3, 3, 240, 80),
		standing(4, 4, 238, 80),
	}
	cfg := FinalistConfig{FinalistsCount: 3, Strategy: repository.TieBreakManualSelection}

	result := SelectFinalists(standings, cfg, []int{1, 2, 999})

	assert.True(t, result.Unresolved)
}

func ids(standings []Standing) []int {
	out := make([]int, 0, len(standings))
	for _, s := range standings {
		out = append(out, s.Contestant.Id)
	}
	return out
}
