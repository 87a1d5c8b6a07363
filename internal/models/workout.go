package models

// Set kinds as reported by the remote API. Warm-up sets are kept for
// display but excluded from all record and volume computations.
const (
	SetTypeNormal  = "normal"
	SetTypeWarmup  = "warmup"
	SetTypeDropset = "dropset"
	SetTypeFailure = "failure"
)

// Workout is an immutable snapshot of one logged workout. It is never
// mutated locally; its lifetime is one fetch cycle (possibly cached).
type Workout struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartTime   APITime         `json:"start_time"`
	EndTime     APITime         `json:"end_time"`
	CreatedAt   APITime         `json:"created_at"`
	UpdatedAt   APITime         `json:"updated_at"`
	Exercises   []ExerciseEntry `json:"exercises"`
}

// ExerciseEntry is one exercise performed within a workout.
type ExerciseEntry struct {
	Index              int        `json:"index"`
	Title              string     `json:"title"`
	Notes              string     `json:"notes"`
	ExerciseTemplateID string     `json:"exercise_template_id"`
	SupersetID         *int       `json:"superset_id"`
	Sets               []SetEntry `json:"sets"`
}

// SetEntry is a single set. Weight and reps are nullable; the remaining
// metric fields are carried through but ignored by the analytics math.
type SetEntry struct {
	Index           int      `json:"index"`
	Type            string   `json:"type"`
	WeightKg        *float64 `json:"weight_kg"`
	Reps            *float64 `json:"reps"`
	DistanceMeters  *float64 `json:"distance_meters"`
	DurationSeconds *float64 `json:"duration_seconds"`
	RPE             *float64 `json:"rpe"`
	CustomMetric    *float64 `json:"custom_metric"`
}

// HasLift reports whether the set carries both a positive weight and a
// positive rep count, i.e. contributes to volume and record computations.
func (s SetEntry) HasLift() bool {
	return s.WeightKg != nil && *s.WeightKg > 0 && s.Reps != nil && *s.Reps > 0
}

// Volume returns weight x reps, or 0 when either is absent.
func (s SetEntry) Volume() float64 {
	if !s.HasLift() {
		return 0
	}
	return *s.WeightKg * *s.Reps
}
