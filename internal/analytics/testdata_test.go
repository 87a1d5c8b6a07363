package analytics

import (
	"time"

	"github.com/claude/liftstats/internal/models"
)

// Shared fixture helpers for analytics tests.

func fptr(v float64) *float64 { return &v }

func day(d int) time.Time {
	return time.Date(2026, 3, d, 18, 0, 0, 0, time.UTC)
}

func lift(weight, reps float64) models.SetEntry {
	return models.SetEntry{Type: models.SetTypeNormal, WeightKg: fptr(weight), Reps: fptr(reps)}
}

func warmup(weight, reps float64) models.SetEntry {
	return models.SetEntry{Type: models.SetTypeWarmup, WeightKg: fptr(weight), Reps: fptr(reps)}
}

func workout(id string, start time.Time, exercises ...models.ExerciseEntry) models.Workout {
	return models.Workout{
		ID:        id,
		Title:     "Workout " + id,
		StartTime: models.APITime{Time: start},
		EndTime:   models.APITime{Time: start.Add(time.Hour)},
		Exercises: exercises,
	}
}

func exercise(templateID string, sets ...models.SetEntry) models.ExerciseEntry {
	for i := range sets {
		sets[i].Index = i
	}
	return models.ExerciseEntry{Title: "Exercise " + templateID, ExerciseTemplateID: templateID, Sets: sets}
}

func template(id, title, muscle string) models.ExerciseTemplate {
	return models.ExerciseTemplate{
		ID:                 id,
		Title:              title,
		Type:               "weight_reps",
		PrimaryMuscleGroup: muscle,
		Equipment:          "barbell",
	}
}
