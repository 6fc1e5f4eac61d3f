// Package stats computes derived views over the full session collection:
// period summaries, streaks, top-exercise frequency, personal bests, volume
// leaderboards, and per-movement progress series. Every function is pure and
// deterministic given the same sessions and reference time, and total over
// sparse legacy data (missing numeric fields read as zero).
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/claude/repbar/internal/models"
)

// Display limits matching the stats screens these feed.
const (
	TopExercisesLimit  = 8
	PersonalBestsLimit = 10
	VolumeLimit        = 8
	SeriesLimit        = 14
)

// PeriodSummary aggregates the sessions in a closed date range. Averages are
// rounded to the nearest whole unit; an empty period reports zeros.
type PeriodSummary struct {
	Workouts               int `json:"workouts"`
	TotalMinutes           int `json:"totalMinutes"`
	AvgMinutesPerWorkout   int `json:"avgMinutesPerWorkout"`
	AvgExercisesPerWorkout int `json:"avgExercisesPerWorkout"`
}

// DayCount is the number of sessions on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Streaks holds the current and best runs of consecutive training days.
type Streaks struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// ExerciseCount is one row of the top-exercise leaderboard.
type ExerciseCount struct {
	MovementID string `json:"movementId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// BestSet holds a movement's all-time maxima. BestAddKg and BestReps are
// maximized independently over every set ever logged; they need not come
// from the same set.
type BestSet struct {
	MovementID string  `json:"movementId"`
	Name       string  `json:"name"`
	BestAddKg  float64 `json:"bestAddKg"`
	BestReps   int     `json:"bestReps"`
	LastDate   string  `json:"lastDate"`
}

// VolumeEntry is one row of the trailing-30-day rep volume leaderboard.
type VolumeEntry struct {
	MovementID string `json:"movementId"`
	Name       string `json:"name"`
	Reps       int    `json:"reps"`
}

// AllTime summarizes the entire session history.
type AllTime struct {
	Sessions  int   `json:"sessions"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// Overview bundles everything the stats screen renders in one pass.
type Overview struct {
	ThisWeek      PeriodSummary   `json:"thisWeek"`
	WeekActivity  []DayCount      `json:"weekActivity"`
	Last30Days    PeriodSummary   `json:"last30Days"`
	AllTime       AllTime         `json:"allTime"`
	Streaks       Streaks         `json:"streaks"`
	TopExercises  []ExerciseCount `json:"topExercises"`
	PersonalBests []BestSet       `json:"personalBests"`
	Volume        []VolumeEntry   `json:"volume"`
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// startOfWeekMon returns midnight local time on the Monday of t's week.
func startOfWeekMon(t time.Time) time.Time {
	mon0 := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -mon0)
}

// groupByDate indexes sessions by their calendar day.
func groupByDate(sessions []models.Session) map[string][]models.Session {
	byDate := make(map[string][]models.Session)
	for _, s := range sessions {
		byDate[s.Date] = append(byDate[s.Date], s)
	}
	return byDate
}

func roundDiv(total, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}

// Summarize aggregates sessions whose date falls within [start, end], both
// inclusive YYYY-MM-DD keys.
func Summarize(sessions []models.Session, start, end string) PeriodSummary {
	var sum PeriodSummary
	var totalMs int64
	var totalExercises int
	for _, s := range sessions {
		if s.Date < start || s.Date > end {
			continue
		}
		sum.Workouts++
		totalMs += s.ElapsedMs
		totalExercises += len(s.Exercises)
	}
	sum.TotalMinutes = int(math.Round(float64(totalMs) / 60000))
	sum.AvgMinutesPerWorkout = roundDiv(sum.TotalMinutes, sum.Workouts)
	sum.AvgExercisesPerWorkout = roundDiv(totalExercises, sum.Workouts)
	return sum
}

// ThisWeek summarizes the Monday-start 7-day window containing now.
func ThisWeek(sessions []models.Session, now time.Time) PeriodSummary {
	ws := startOfWeekMon(now)
	return Summarize(sessions, dateKey(ws), dateKey(ws.AddDate(0, 0, 6)))
}

// Last30Days summarizes the 30 calendar days ending at now.
func Last30Days(sessions []models.Session, now time.Time) PeriodSummary {
	return Summarize(sessions, dateKey(now.AddDate(0, 0, -29)), dateKey(now))
}

// WeekActivity returns per-day session counts for the Monday-start week
// containing now, in calendar order. Feeds the weekly activity bar.
func WeekActivity(sessions []models.Session, now time.Time) []DayCount {
	byDate := groupByDate(sessions)
	ws := startOfWeekMon(now)
	out := make([]DayCount, 7)
	for i := 0; i < 7; i++ {
		k := dateKey(ws.AddDate(0, 0, i))
		out[i] = DayCount{Date: k, Count: len(byDate[k])}
	}
	return out
}

// AllTimeSummary counts every session and its accumulated time.
func AllTimeSummary(sessions []models.Session) AllTime {
	at := AllTime{Sessions: len(sessions)}
	for _, s := range sessions {
		at.ElapsedMs += s.ElapsedMs
	}
	return at
}

// ComputeStreaks walks backward from today counting consecutive training
// days for the current streak (a rest day today means 0), and scans distinct
// session dates ascending for the longest consecutive run ever.
func ComputeStreaks(sessions []models.Session, now time.Time) Streaks {
	byDate := groupByDate(sessions)

	var st Streaks
	for i := 0; i < 365; i++ {
		if len(byDate[dateKey(now.AddDate(0, 0, -i))]) == 0 {
			break
		}
		st.Current++
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	run := 0
	prev := ""
	for _, d := range dates {
		consecutive := false
		if prev != "" {
			if pt, ok := parseDate(prev); ok {
				consecutive = dateKey(pt.AddDate(0, 0, 1)) == d
			}
		}
		if consecutive {
			run++
		} else {
			run = 1
		}
		if run > st.Best {
			st.Best = run
		}
		prev = d
	}
	return st
}

// TopExercises counts exercise entries per movement across all sessions,
// sorted by count descending. Ties keep first-encounter order. Entries
// without a movement id group by their snapshot name. A limit <= 0 returns
// every row.
func TopExercises(sessions []models.Session, limit int) []ExerciseCount {
	counts := make(map[string]*ExerciseCount)
	var order []string
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			key := ex.MovementKey()
			c, ok := counts[key]
			if !ok {
				c = &ExerciseCount{MovementID: key, Name: ex.Name}
				counts[key] = c
				order = append(order, key)
			}
			c.Count++
		}
	}
	out := make([]ExerciseCount, 0, len(order))
	for _, key := range order {
		out = append(out, *counts[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return clip(out, limit)
}

// PersonalBests returns each movement's all-time best weight and best reps,
// independently maximized over every logged set, with the date of the most
// recent session containing the movement. Sorted by best weight descending,
// then best reps descending. A limit <= 0 returns every row.
func PersonalBests(sessions []models.Session, limit int) []BestSet {
	bests := make(map[string]*BestSet)
	var order []string
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			key := ex.MovementKey()
			for _, set := range ex.Sets {
				b, ok := bests[key]
				if !ok {
					b = &BestSet{MovementID: key, Name: ex.Name, LastDate: s.Date}
					bests[key] = b
					order = append(order, key)
				}
				if kg := set.AddKgValue(); kg > b.BestAddKg {
					b.BestAddKg = kg
				}
				if reps := set.RepsValue(); reps > b.BestReps {
					b.BestReps = reps
				}
				if s.Date > b.LastDate {
					b.LastDate = s.Date
				}
			}
		}
	}
	out := make([]BestSet, 0, len(order))
	for _, key := range order {
		out = append(out, *bests[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BestAddKg != out[j].BestAddKg {
			return out[i].BestAddKg > out[j].BestAddKg
		}
		return out[i].BestReps > out[j].BestReps
	})
	return clip(out, limit)
}

// VolumeLeaderboard sums reps per movement over the trailing 30-day window
// ending at now, sorted descending. Sets older than the window contribute
// nothing here, though they still count toward all-time personal bests.
// A limit <= 0 returns every row.
func VolumeLeaderboard(sessions []models.Session, now time.Time, limit int) []VolumeEntry {
	start := dateKey(now.AddDate(0, 0, -29))
	end := dateKey(now)
	vols := make(map[string]*VolumeEntry)
	var order []string
	for _, s := range sessions {
		if s.Date < start || s.Date > end {
			continue
		}
		for _, ex := range s.Exercises {
			key := ex.MovementKey()
			v, ok := vols[key]
			if !ok {
				v = &VolumeEntry{MovementID: key, Name: ex.Name}
				vols[key] = v
				order = append(order, key)
			}
			for _, set := range ex.Sets {
				v.Reps += set.RepsValue()
			}
		}
	}
	out := make([]VolumeEntry, 0, len(order))
	for _, key := range order {
		out = append(out, *vols[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Reps > out[j].Reps })
	return clip(out, limit)
}

// BuildOverview assembles the full stats screen payload.
func BuildOverview(sessions []models.Session, now time.Time) Overview {
	return Overview{
		ThisWeek:      ThisWeek(sessions, now),
		WeekActivity:  WeekActivity(sessions, now),
		Last30Days:    Last30Days(sessions, now),
		AllTime:       AllTimeSummary(sessions),
		Streaks:       ComputeStreaks(sessions, now),
		TopExercises:  TopExercises(sessions, TopExercisesLimit),
		PersonalBests: PersonalBests(sessions, PersonalBestsLimit),
		Volume:        VolumeLeaderboard(sessions, now, VolumeLimit),
	}
}

func clip[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
