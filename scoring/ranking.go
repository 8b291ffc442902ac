package scoring

import (
	"sort"
	"time"

	"pageant/repository"
)

// Total is one contestant's value in a ranking column.
type Total struct {
	ContestantId int
	Value        float64
}

// CompetitionRanks assigns standard competition ranks with skips: a
// block of k contestants tied at the same value all share rank r, and
// the next distinct value receives rank r+k. With descending=true a
// higher value ranks first, otherwise a lower one does.
func CompetitionRanks(totals []Total, descending bool) map[int]int {
	sorted := make([]Total, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Value < sorted[j].Value
	})

	ranks := make(map[int]int, len(sorted))
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1].Value == sorted[i].Value {
			j++
		}
		for k := i; k <= j; k++ {
			ranks[sorted[k].ContestantId] = i + 1
		}
		i = j + 1
	}
	return ranks
}

// RankRow is one contestant's line in the final rank table.
type RankRow struct {
	Contestant *repository.Contestant
	JudgeRanks map[int]int
	TotalScore float64
	TotalRank  int
	FinalRank  int
}

// ComputeRankTable builds the full ranking for one bracket: each judge
// ranks contestants by their total (competition ranking, descending),
// per-judge ranks are summed into a total rank, and the same ranking
// rule applied ascending over total ranks yields the final placement.
// Rows come back ordered by total rank.
func ComputeRankTable(contestants []*repository.Contestant, judges []*repository.Judge, scores []ScoreRecord, leaves map[int]bool) []RankRow {
	t := time.Now()
	totals := JudgeTotals(judges, contestants, scores, leaves)

	judgeRanks := make(map[int]map[int]int, len(judges))
	for _, judge := range judges {
		column := make([]Total, 0, len(contestants))
		for _, contestant := range contestants {
			column = append(column, Total{ContestantId: contestant.Id, Value: totals[judge.Id][contestant.Id]})
		}
		judgeRanks[judge.Id] = CompetitionRanks(column, true)
	}

	rows := make([]RankRow, 0, len(contestants))
	totalRankColumn := make([]Total, 0, len(contestants))
	for _, contestant := range contestants {
		row := RankRow{
			Contestant: contestant,
			JudgeRanks: make(map[int]int, len(judges)),
		}
		for _, judge := range judges {
			rank := judgeRanks[judge.Id][contestant.Id]
			row.JudgeRanks[judge.Id] = rank
			row.TotalRank += rank
			row.TotalScore += totals[judge.Id][contestant.Id]
		}
		rows = append(rows, row)
		totalRankColumn = append(totalRankColumn, Total{ContestantId: contestant.Id, Value: float64(row.TotalRank)})
	}

	finalRanks := CompetitionRanks(totalRankColumn, false)
	for i := range rows {
		rows[i].FinalRank = finalRanks[rows[i].Contestant.Id]
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalRank != rows[j].TotalRank {
			return rows[i].TotalRank < rows[j].TotalRank
		}
		return rows[i].Contestant.Number < rows[j].Contestant.Number
	})
	aggregationDuration.WithLabelValues("rank_table").Set(time.Since(t).Seconds())
	return rows
}
