package models

// Routine is a saved workout plan. The analytics core passes routines
// through untouched.
type Routine struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Notes     string            `json:"notes"`
	CreatedAt APITime           `json:"created_at"`
	UpdatedAt APITime           `json:"updated_at"`
	Exercises []RoutineExercise `json:"exercises"`
}

// RoutineExercise references a template plus its planned sets.
type RoutineExercise struct {
	Index              int          `json:"index"`
	Title              string       `json:"title"`
	Notes              string       `json:"notes"`
	ExerciseTemplateID string       `json:"exercise_template_id"`
	RestSeconds        *int         `json:"rest_seconds"`
	Sets               []RoutineSet `json:"sets"`
}

// RoutineSet is a planned set within a routine.
type RoutineSet struct {
	Index    int      `json:"index"`
	Type     string   `json:"type"`
	WeightKg *float64 `json:"weight_kg"`
	Reps     *float64 `json:"reps"`
}
