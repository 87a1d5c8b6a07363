package analytics

import (
	"sort"

	"github.com/claude/liftstats/internal/models"
)

// MuscleVolumeEntry is the accumulated training volume and set count for
// one primary muscle group.
type MuscleVolumeEntry struct {
	MuscleGroup string  `json:"muscle_group"`
	VolumeKg    float64 `json:"volume_kg"`
	Sets        int     `json:"sets"`
}

// AggregateMuscleVolume buckets volume (weight x reps) and set counts per
// primary muscle group across the given workouts. Secondary muscle groups
// receive no credit. Sets whose exercise template cannot be resolved are
// skipped without failing the aggregation; sets missing weight or reps
// still count toward the set total. Warm-up sets are excluded throughout.
// The result is sorted descending by volume.
func AggregateMuscleVolume(workouts []models.Workout, templates []models.ExerciseTemplate) []MuscleVolumeEntry {
	byID := make(map[string]models.ExerciseTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	buckets := make(map[string]*MuscleVolumeEntry)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			tpl, ok := byID[ex.ExerciseTemplateID]
			if !ok {
				continue
			}
			for _, s := range ex.Sets {
				if s.Type == models.SetTypeWarmup {
					continue
				}
				b := buckets[tpl.PrimaryMuscleGroup]
				if b == nil {
					b = &MuscleVolumeEntry{MuscleGroup: tpl.PrimaryMuscleGroup}
					buckets[tpl.PrimaryMuscleGroup] = b
				}
				b.Sets++
				b.VolumeKg += s.Volume()
			}
		}
	}

	entries := make([]MuscleVolumeEntry, 0, len(buckets))
	for _, b := range buckets {
		entries = append(entries, *b)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].VolumeKg > entries[j].VolumeKg
	})
	return entries
}

// WorkoutTotals reduces one workout to its total volume and its number of
// non-warm-up sets.
func WorkoutTotals(w models.Workout) (volumeKg float64, sets int) {
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			if s.Type == models.SetTypeWarmup {
				continue
			}
			sets++
			volumeKg += s.Volume()
		}
	}
	return volumeKg, sets
}
