package scoring

import (
	"pageant/repository"
)

const (
	BracketAll    = "ALL"
	BracketMale   = "MALE"
	BracketFemale = "FEMALE"
	BracketOther  = "OTHER"
)

// Bracket is a subset of the contestant pool that is ranked and
// tie-broken independently. The OTHER bracket collects contestants
// without a recognized sex when genders are separated; it is shown in
// reports but takes no part in finalist selection.
type Bracket struct {
	Label       string
	Contestants []*repository.Contestant
	Competitive bool
}

func SplitBrackets(contestants []*repository.Contestant, separateGenders bool) []Bracket {
	if !separateGenders {
		return []Bracket{{Label: BracketAll, Contestants: contestants, Competitive: true}}
	}
	male := Bracket{Label: BracketMale, Competitive: true}
	female := Bracket{Label: BracketFemale, Competitive: true}
	other := Bracket{Label: BracketOther}
	for _, contestant := range contestants {
		switch {
		case contestant.Sex != nil && *contestant.Sex == repository.SexMale:
			male.Contestants = append(male.Contestants, contestant)
		case contestant.Sex != nil && *contestant.Sex == repository.SexFemale:
			female.Contestants = append(female.Contestants, contestant)
		default:
			other.Contestants = append(other.Contestants, contestant)
		}
	}
	brackets := []Bracket{male, female}
	if len(other.Contestants) > 0 {
		brackets = append(brackets, other)
	}
	return brackets
}
