package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftstats/internal/models"
)

// SetBreakdown is one set of a progress session, kept for display. Warm-up
// sets appear here but never contribute to maxima or records.
type SetBreakdown struct {
	Index    int      `json:"index"`
	Type     string   `json:"type"`
	WeightKg *float64 `json:"weight_kg"`
	Reps     *float64 `json:"reps"`
}

// ProgressSession is one workout's occurrence of a target exercise, reduced
// to per-session maxima. The three maxima are independent of each other:
// they need not come from the same set.
type ProgressSession struct {
	WorkoutID   string         `json:"workout_id"`
	Date        time.Time      `json:"date"`
	Sets        []SetBreakdown `json:"sets"`
	MaxVolumeKg float64        `json:"max_volume_kg"`
	MaxWeightKg float64        `json:"max_weight_kg"`
	MaxReps     float64        `json:"max_reps"`
}

// RepRecord is the heaviest weight ever lifted at one exact rep count.
type RepRecord struct {
	Reps     int       `json:"reps"`
	WeightKg float64   `json:"weight_kg"`
	Date     time.Time `json:"date"`
}

// Sessions extracts every session of the given exercise template from the
// supplied workouts, in chronological order. A workout that contains the
// exercise more than once yields a single session covering all its sets.
func Sessions(templateID string, workouts []models.Workout) []ProgressSession {
	var sessions []ProgressSession
	for _, w := range workouts {
		var sets []SetBreakdown
		for _, ex := range w.Exercises {
			if ex.ExerciseTemplateID != templateID {
				continue
			}
			for _, s := range ex.Sets {
				sets = append(sets, SetBreakdown{
					Index:    s.Index,
					Type:     s.Type,
					WeightKg: s.WeightKg,
					Reps:     s.Reps,
				})
			}
		}
		if len(sets) == 0 {
			continue
		}

		session := ProgressSession{
			WorkoutID: w.ID,
			Date:      w.StartTime.Time,
			Sets:      sets,
		}
		session.MaxVolumeKg, session.MaxWeightKg, session.MaxReps = sessionMaxima(sets)
		sessions = append(sessions, session)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions
}

func sessionMaxima(sets []SetBreakdown) (maxVolume, maxWeight, maxReps float64) {
	for _, s := range sets {
		if s.Type == models.SetTypeWarmup {
			continue
		}
		if s.WeightKg != nil && *s.WeightKg > maxWeight {
			maxWeight = *s.WeightKg
		}
		if s.Reps != nil && *s.Reps > maxReps {
			maxReps = *s.Reps
		}
		if s.WeightKg != nil && s.Reps != nil {
			if v := *s.WeightKg * *s.Reps; v > maxVolume {
				maxVolume = v
			}
		}
	}
	return maxVolume, maxWeight, maxReps
}

// RecordsByReps folds all sessions into an all-time best-weight-per-rep-count
// table, sorted ascending by rep count. Sessions are folded in the order
// given (chronological, as produced by Sessions), so on equal weight at the
// same rep count the first-achieved date is kept. Warm-up sets and sets
// without a whole-number rep count carry no records.
func RecordsByReps(sessions []ProgressSession) []RepRecord {
	best := make(map[int]RepRecord)
	for _, sess := range sessions {
		for _, s := range sess.Sets {
			if s.Type == models.SetTypeWarmup || s.WeightKg == nil || s.Reps == nil {
				continue
			}
			reps := int(*s.Reps)
			if reps <= 0 || float64(reps) != *s.Reps || *s.WeightKg <= 0 {
				continue
			}
			cur, ok := best[reps]
			if !ok || *s.WeightKg > cur.WeightKg {
				best[reps] = RepRecord{Reps: reps, WeightKg: *s.WeightKg, Date: sess.Date}
			}
		}
	}

	records := make([]RepRecord, 0, len(best))
	for _, r := range best {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Reps < records[j].Reps })
	return records
}
