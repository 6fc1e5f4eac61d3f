package stats

import (
	"fmt"
	"sort"

	"github.com/claude/repbar/internal/models"
)

// normEpsilon floors the span of a min-max normalization so a constant
// series divides cleanly instead of by zero.
const normEpsilon = 1e-6

// SeriesPoint is one charted session for a movement. BestKg and BestReps are
// each the best single set in that session, maximized independently per
// metric; Score multiplies the two maxima. A session qualifies only if it
// logged at least one set with nonzero weight or nonzero reps.
type SeriesPoint struct {
	Date      string  `json:"date"`
	SessionID string  `json:"sessionId"`
	BestKg    float64 `json:"bestKg"`
	BestReps  int     `json:"bestReps"`
	Score     float64 `json:"score"`
	Label     string  `json:"label"`
}

// MovementSummary condenses a movement's charted history for the detail view.
type MovementSummary struct {
	Sessions  int     `json:"sessions"`
	BestKg    float64 `json:"bestKg"`
	BestReps  int     `json:"bestReps"`
	BestScore float64 `json:"bestScore"`
	LastLabel string  `json:"lastLabel"`
	LastScore float64 `json:"lastScore"`
}

// History returns every qualifying session for a movement, newest first.
func History(sessions []models.Session, movementID string) []SeriesPoint {
	var rows []SeriesPoint
	for _, s := range sessions {
		bestKg := 0.0
		bestReps := 0
		for _, ex := range s.Exercises {
			if ex.MovementKey() != movementID {
				continue
			}
			for _, set := range ex.Sets {
				if kg := set.AddKgValue(); kg > bestKg {
					bestKg = kg
				}
				if reps := set.RepsValue(); reps > bestReps {
					bestReps = reps
				}
			}
		}
		if bestKg > 0 || bestReps > 0 {
			rows = append(rows, SeriesPoint{
				Date:      s.Date,
				SessionID: s.ID,
				BestKg:    bestKg,
				BestReps:  bestReps,
				Score:     bestKg * float64(bestReps),
				Label:     bestLabel(bestKg, bestReps),
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows
}

// Series returns the chart window for a movement: the most recent limit
// qualifying sessions, reordered oldest to newest for display. A limit <= 0
// charts the full history.
func Series(sessions []models.Session, movementID string, limit int) []SeriesPoint {
	rows := clip(History(sessions, movementID), limit)
	out := make([]SeriesPoint, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}

// Summarize a movement's full history.
func SummarizeMovement(sessions []models.Session, movementID string) MovementSummary {
	rows := History(sessions, movementID)
	sum := MovementSummary{Sessions: len(rows), LastLabel: "-"}
	if len(rows) == 0 {
		return sum
	}
	for _, r := range rows {
		if r.BestKg > sum.BestKg {
			sum.BestKg = r.BestKg
		}
		if r.BestReps > sum.BestReps {
			sum.BestReps = r.BestReps
		}
		if r.Score > sum.BestScore {
			sum.BestScore = r.Score
		}
	}
	sum.LastLabel = rows[0].Label
	sum.LastScore = rows[0].Score
	return sum
}

// Normalize min-max scales values to [0,1] so two differently-scaled series
// can share one chart area. The span is floored at normEpsilon, so a
// constant series maps to 0 for every point rather than dividing by zero.
func Normalize(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span < normEpsilon {
		span = normEpsilon
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - minV) / span
	}
	return out
}

func bestLabel(kg float64, reps int) string {
	if kg > 0 {
		if reps == 0 {
			return fmt.Sprintf("- reps @ +%gkg", kg)
		}
		return fmt.Sprintf("%d reps @ +%gkg", reps, kg)
	}
	return fmt.Sprintf("%d reps (BW)", reps)
}
