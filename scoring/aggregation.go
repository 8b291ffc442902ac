package scoring

import (
	"time"

	"pageant/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScoreRecord is a single recorded leaf-criterion score, detached from
// the persistence model so that every computation in this package is a
// pure function over a snapshot.
type ScoreRecord struct {
	JudgeId      int
	ContestantId int
	CriterionId  int
	Value        float64
}

// Standing is a contestant's aggregated preliminary position: the sum
// of all recorded leaf scores and the average of per-judge totals.
type Standing struct {
	Contestant *repository.Contestant
	Total      float64
	Average    float64
}

var aggregationDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "tabulation_aggregation_duration_s",
	Help: "Duration of score aggregation steps",
}, []string{"step"})

func FromScores(scores []*repository.Score) []ScoreRecord {
	records := make([]ScoreRecord, 0, len(scores))
	for _, score := range scores {
		records = append(records, ScoreRecord{
			JudgeId:      score.JudgeId,
			ContestantId: score.ContestantId,
			CriterionId:  score.CriterionId,
			Value:        score.Value,
		})
	}
	return records
}

// LeafCriteria returns the scorable sub-criterion ids, optionally
// restricted to the leaves under one top-level grouping for
// per-category reports.
func LeafCriteria(criteria []*repository.Criterion, topLevelId *int) map[int]bool {
	leaves := make(map[int]bool)
	for _, criterion := range criteria {
		if !criterion.IsLeaf() {
			continue
		}
		if topLevelId != nil && *criterion.ParentId != *topLevelId {
			continue
		}
		leaves[criterion.Id] = true
	}
	return leaves
}

// JudgeTotals sums leaf scores into per-(judge, contestant) totals.
// Every pair is present in the result; leaves without a recorded score
// contribute zero.
func JudgeTotals(judges []*repository.Judge, contestants []*repository.Contestant, scores []ScoreRecord, leaves map[int]bool) map[int]map[int]float64 {
	t := time.Now()
	totals := make(map[int]map[int]float64, len(judges))
	for _, judge := range judges {
		totals[judge.Id] = make(map[int]float64, len(contestants))
		for _, contestant := range contestants {
			totals[judge.Id][contestant.Id] = 0
		}
	}
	for _, score := range scores {
		if !leaves[score.CriterionId] {
			continue
		}
		judgeTotals, ok := totals[score.JudgeId]
		if !ok {
			continue
		}
		if _, ok := judgeTotals[score.ContestantId]; !ok {
			continue
		}
		judgeTotals[score.ContestantId] += score.Value
	}
	aggregationDuration.WithLabelValues("judge_totals").Set(time.Since(t).Seconds())
	return totals
}

// Standings aggregates each contestant's total score and the average of
// per-judge totals across the judges that actually scored them.
func Standings(contestants []*repository.Contestant, judges []*repository.Judge, scores []ScoreRecord, leaves map[int]bool) []Standing {
	t := time.Now()
	totals := JudgeTotals(judges, contestants, scores, leaves)

	panel := make(map[int]bool, len(judges))
	for _, judge := range judges {
		panel[judge.Id] = true
	}

	scoredBy := make(map[int]map[int]bool)
	for _, score := range scores {
		if !leaves[score.CriterionId] || !panel[score.JudgeId] {
			continue
		}
		if scoredBy[score.ContestantId] == nil {
			scoredBy[score.ContestantId] = make(map[int]bool)
		}
		scoredBy[score.ContestantId][score.JudgeId] = true
	}

	standings := make([]Standing, 0, len(contestants))
	for _, contestant := range contestants {
		standing := Standing{Contestant: contestant}
		for _, judge := range judges {
			standing.Total += totals[judge.Id][contestant.Id]
		}
		if n := len(scoredBy[contestant.Id]); n > 0 {
			standing.Average = standing.Total / float64(n)
		}
		standings = append(standings, standing)
	}
	aggregationDuration.WithLabelValues("standings").Set(time.Since(t).Seconds())
	return standings
}
