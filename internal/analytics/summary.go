package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/claude/liftstats/internal/models"
)

// LiftRecord is one dated lift: the weight, the rep count it was achieved
// at, and the workout date.
type LiftRecord struct {
	WeightKg float64   `json:"weight_kg"`
	Reps     int       `json:"reps"`
	Date     time.Time `json:"date"`
}

// ExerciseSummary is the per-template analytics record: usage frequency,
// the best-weight-per-rep-count table, and actual plus estimated 1RM.
type ExerciseSummary struct {
	TemplateID         string      `json:"template_id"`
	Title              string      `json:"title"`
	Type               string      `json:"type"`
	PrimaryMuscleGroup string      `json:"primary_muscle_group"`
	Equipment          string      `json:"equipment"`
	IsCustom           bool        `json:"is_custom"`
	Frequency          int         `json:"frequency"`
	RecordsByReps      []RepRecord `json:"records_by_reps"`
	Actual1RM          *LiftRecord `json:"actual_1rm"`
	Estimated1RM       *LiftRecord `json:"estimated_1rm"`
}

// SummaryOptions filters the summary universe. Search is a case-insensitive
// substring match on the template title. Start/End bound workout start
// times inclusively. ExcludeUnused drops zero-frequency entries after all
// computation.
type SummaryOptions struct {
	Search        string
	ExcludeUnused bool
	Start         *time.Time
	End           *time.Time
}

// BuildSummaries produces one ExerciseSummary per matching template, sorted
// descending by frequency (stable for ties). Frequency counts distinct
// workouts: an exercise appearing twice within one workout counts once.
func BuildSummaries(workouts []models.Workout, templates []models.ExerciseTemplate, opts SummaryOptions) []ExerciseSummary {
	inRange := filterWorkouts(workouts, opts.Start, opts.End)

	summaries := make([]ExerciseSummary, 0, len(templates))
	for _, tpl := range templates {
		if opts.Search != "" && !strings.Contains(strings.ToLower(tpl.Title), strings.ToLower(opts.Search)) {
			continue
		}

		sum := ExerciseSummary{
			TemplateID:         tpl.ID,
			Title:              tpl.Title,
			Type:               tpl.Type,
			PrimaryMuscleGroup: tpl.PrimaryMuscleGroup,
			Equipment:          tpl.Equipment,
			IsCustom:           tpl.IsCustom,
		}

		for _, w := range inRange {
			if workoutContains(w, tpl.ID) {
				sum.Frequency++
			}
		}

		sessions := Sessions(tpl.ID, inRange)
		sum.RecordsByReps = RecordsByReps(sessions)
		sum.Actual1RM = actualOneRM(sum.RecordsByReps)
		sum.Estimated1RM = estimatedOneRM(sum.RecordsByReps)

		summaries = append(summaries, sum)
	}

	if opts.ExcludeUnused {
		kept := summaries[:0]
		for _, s := range summaries {
			if s.Frequency > 0 {
				kept = append(kept, s)
			}
		}
		summaries = kept
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Frequency > summaries[j].Frequency
	})
	return summaries
}

func filterWorkouts(workouts []models.Workout, start, end *time.Time) []models.Workout {
	if start == nil && end == nil {
		return workouts
	}
	var out []models.Workout
	for _, w := range workouts {
		t := w.StartTime.Time
		if start != nil && t.Before(*start) {
			continue
		}
		if end != nil && t.After(*end) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func workoutContains(w models.Workout, templateID string) bool {
	for _, ex := range w.Exercises {
		if ex.ExerciseTemplateID == templateID {
			return true
		}
	}
	return false
}

// actualOneRM is the single heaviest weight at any rep count — 110 kg x 8
// beats 90 kg x 1.
func actualOneRM(records []RepRecord) *LiftRecord {
	var best *LiftRecord
	for _, r := range records {
		if best == nil || r.WeightKg > best.WeightKg {
			best = &LiftRecord{WeightKg: r.WeightKg, Reps: r.Reps, Date: r.Date}
		}
	}
	return best
}

// estimatedOneRM is the highest default-formula estimate across the record
// table. Records the estimator rejects are skipped.
func estimatedOneRM(records []RepRecord) *LiftRecord {
	var best *LiftRecord
	var bestEst float64
	for _, r := range records {
		est, ok := Estimate(r.WeightKg, float64(r.Reps), Brzycki)
		if !ok {
			continue
		}
		if best == nil || est > bestEst {
			best = &LiftRecord{WeightKg: est, Reps: r.Reps, Date: r.Date}
			bestEst = est
		}
	}
	return best
}
