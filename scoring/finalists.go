package scoring

import (
	"sort"

	"pageant/repository"
	"pageant/utils"
)

// FinalistConfig carries the per-bracket selection settings.
type FinalistConfig struct {
	FinalistsCount int
	Strategy       repository.TieBreakingStrategy
}

// FinalistResult is the outcome of finalist selection for one bracket.
type FinalistResult struct {
	// Qualified are contestants strictly above the cutoff average.
	Qualified []Standing
	// TiedGroup are contestants exactly at the cutoff average; empty
	// when nobody needed tie-breaking.
	TiedGroup []Standing
	// Finalists is the selected set, qualified plus resolved ties.
	Finalists []Standing
	// Unresolved is set when the strategy is MANUAL_SELECTION, the tie
	// requires a choice, and no valid-sized selection exists yet.
	Unresolved bool
}

func (r FinalistResult) FinalistIds() []int {
	return utils.Map(r.Finalists, func(s Standing) int { return s.Contestant.Id })
}

type tieResolver func(qualified, tied []Standing, cfg FinalistConfig, manualIds []int, all []Standing) ([]Standing, bool)

var tieResolvers = map[repository.TieBreakingStrategy]tieResolver{
	repository.TieBreakIncludeTies:      resolveIncludeTies,
	repository.TieBreakTotalScore:       resolveTotalScore,
	repository.TieBreakContestantNumber: resolveContestantNumber,
	repository.TieBreakManualSelection:  resolveManualSelection,
}

// SelectFinalists picks the bracket's qualifiers for the FINAL phase
// from preliminary standings. Contestants strictly above the cutoff
// average always qualify; a tie at the cutoff is resolved by the
// configured strategy. manualIds is the admin's selection for this
// bracket, already filtered to bracket members.
func SelectFinalists(standings []Standing, cfg FinalistConfig, manualIds []int) FinalistResult {
	sorted := sortByAverage(standings)
	if cfg.FinalistsCount <= 0 || len(sorted) <= cfg.FinalistsCount {
		return FinalistResult{Qualified: sorted, Finalists: sorted}
	}

	cutoff := sorted[cfg.FinalistsCount-1].Average
	qualified := utils.Filter(sorted, func(s Standing) bool { return s.Average > cutoff })
	tied := utils.Filter(sorted, func(s Standing) bool { return s.Average == cutoff })

	result := FinalistResult{Qualified: qualified}
	if len(tied) <= 1 {
		result.Finalists = append(append([]Standing{}, qualified...), tied...)
		return result
	}

	result.TiedGroup = tied
	resolver, ok := tieResolvers[cfg.Strategy]
	if !ok {
		resolver = resolveIncludeTies
	}
	result.Finalists, result.Unresolved = resolver(qualified, tied, cfg, manualIds, sorted)
	return result
}

func resolveIncludeTies(qualified, tied []Standing, cfg FinalistConfig, manualIds []int, all []Standing) ([]Standing, bool) {
	return append(append([]Standing{}, qualified...), tied...), false
}

func resolveTotalScore(qualified, tied []Standing, cfg FinalistConfig, manualIds []int, all []Standing) ([]Standing, bool) {
	ordered := make([]Standing, len(tied))
	copy(ordered, tied)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Total != ordered[j].Total {
			return ordered[i].Total > ordered[j].Total
		}
		return ordered[i].Contestant.Number < ordered[j].Contestant.Number
	})
	remaining := cfg.FinalistsCount - len(qualified)
	return append(append([]Standing{}, qualified...), ordered[:remaining]...), false
}

func resolveContestantNumber(qualified, tied []Standing, cfg FinalistConfig, manualIds []int, all []Standing) ([]Standing, bool) {
	ordered := make([]Standing, len(tied))
	copy(ordered, tied)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Contestant.Number < ordered[j].Contestant.Number
	})
	remaining := cfg.FinalistsCount - len(qualified)
	return append(append([]Standing{}, qualified...), ordered[:remaining]...), false
}

func resolveManualSelection(qualified, tied []Standing, cfg FinalistConfig, manualIds []int, all []Standing) ([]Standing, bool) {
	if len(manualIds) == cfg.FinalistsCount {
		selected := make(map[int]bool, len(manualIds))
		for _, id := range manualIds {
			selected[id] = true
		}
		finalists := utils.Filter(all, func(s Standing) bool { return selected[s.Contestant.Id] })
		if len(finalists) == cfg.FinalistsCount {
			return finalists, false
		}
	}
	finalists, _ := resolveIncludeTies(qualified, tied, cfg, manualIds, all)
	return finalists, true
}

func sortByAverage(standings []Standing) []Standing {
	sorted := make([]Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Average != sorted[j].Average {
			return sorted[i].Average > sorted[j].Average
		}
		return sorted[i].Contestant.Number < sorted[j].Contestant.Number
	})
	return sorted
}
