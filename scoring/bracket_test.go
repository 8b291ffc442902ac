package scoring

import (
	"testing"

	"pageant/repository"

	"github.com/stretchr/testify/assert"
)

func sexPtr(s repository.Sex) *repository.Sex {
	return &s
}

func TestSplitBracketsSingle(t *testing.T) {
	contestants := []*repository.Contestant{
		{Id: 1, Sex: sexPtr(repository.SexMale)},
		{Id: 2, Sex: sexPtr(repository.SexFemale)},
	}

	brackets := SplitBrackets(contestants, false)

	assert.Len(t, brackets, 1)
	assert.Equal(t, BracketAll, brackets[0].Label)
	assert.True(t, brackets[0].Competitive)
	assert.Len(t, brackets[0].Contestants, 2)
}

func TestSplitBracketsSeparateGenders(t *testing.T) {
	contestants := []*repository.Contestant{
		{Id: 1, Sex: sexPtr(repository.SexMale)},
		{Id: 2, Sex: sexPtr(repository.SexFemale)},
		{Id: 3, Sex: sexPtr(repository.SexMale)},
	}

	brackets := SplitBrackets(contestants, true)

	assert.Len(t, brackets, 2)
	assert.Equal(t, BracketMale, brackets[0].Label)
	assert.Len(t, brackets[0].Contestants, 2)
	assert.Equal(t, BracketFemale, brackets[1].Label)
	assert.Len(t, brackets[1].Contestants, 1)
}

func TestSplitBracketsOther(t *testing.T) {
	contestants := []*repository.Contestant{
		{Id: 1, Sex: sexPtr(repository.SexMale)},
		{Id: 2},
	}

	brackets := SplitBrackets(contestants, true)

	assert.Len(t, brackets, 3)
	other := brackets[2]
	assert.Equal(t, BracketOther, other.Label)
	assert.False(t, other.Competitive)
	assert.Len(t, other.Contestants, 1)

	// empty gender brackets are still reported
	assert.Empty(t, brackets[1].Contestants)
}
