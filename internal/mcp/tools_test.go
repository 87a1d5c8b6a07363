package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// fakeDataSource serves fixtures for handler tests.
type fakeDataSource struct {
	workouts  []models.Workout
	templates []models.ExerciseTemplate
	routines  []models.Routine
	err       error
}

func (f *fakeDataSource) Workouts(context.Context) ([]models.Workout, error) {
	return f.workouts, f.err
}

func (f *fakeDataSource) ExerciseTemplates(context.Context) ([]models.ExerciseTemplate, error) {
	return f.templates, f.err
}

func (f *fakeDataSource) Routines(context.Context) ([]models.Routine, error) {
	return f.routines, f.err
}

func testHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func fptr(v float64) *float64 { return &v }

func fixtureWorkout(id string, start time.Time, templateID string, weight, reps float64) models.Workout {
	return models.Workout{
		ID:        id,
		Title:     "Session " + id,
		StartTime: models.APITime{Time: start},
		Exercises: []models.ExerciseEntry{{
			ExerciseTemplateID: templateID,
			Sets: []models.SetEntry{{
				Type:     models.SetTypeNormal,
				WeightKg: fptr(weight),
				Reps:     fptr(reps),
			}},
		}},
	}
}

// TestGetWorkoutsRangeAndLimit verifies date filtering, descending order,
// and the 10-workout cap.
func TestGetWorkoutsRangeAndLimit(t *testing.T) {
	ds := &fakeDataSource{}
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		ds.workouts = append(ds.workouts, fixtureWorkout(
			string(rune('a'+i)), base.AddDate(0, 0, i), "squat", 100, 5))
	}

	h := testHandlers(ds)
	res, err := h.getWorkouts(context.Background(), callRequest(map[string]any{
		"start": "2026-02-01",
		"end":   "2026-02-20",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var got []struct {
		ID            string  `json:"id"`
		TotalVolumeKg float64 `json:"total_volume_kg"`
		TotalSets     int     `json:"total_sets"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d workouts, want 10 (capped)", len(got))
	}
	// 15 fixtures span Feb 1-15; the range keeps all, the cap keeps the 10 latest.
	if got[0].ID != "o" {
		t.Errorf("first workout = %q, want the most recent (o)", got[0].ID)
	}
	if got[0].TotalVolumeKg != 500 || got[0].TotalSets != 1 {
		t.Errorf("totals = (%v, %d), want (500, 1)", got[0].TotalVolumeKg, got[0].TotalSets)
	}
}

// TestGetWorkoutsNoData verifies the explicit no-data signal for an empty
// range.
func TestGetWorkoutsNoData(t *testing.T) {
	h := testHandlers(&fakeDataSource{})
	res, err := h.getWorkouts(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatal("empty result reported as error, want plain no-data text")
	}
	if text := resultText(t, res); !strings.Contains(text, "no workouts") {
		t.Errorf("text = %q, want a no-data message", text)
	}
}

// TestGetWorkoutsFetchError verifies that upstream failures surface as tool
// errors carrying the cause.
func TestGetWorkoutsFetchError(t *testing.T) {
	h := testHandlers(&fakeDataSource{err: errors.New("upstream down")})
	res, err := h.getWorkouts(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("fetch failure not reported as tool error")
	}
	if text := resultText(t, res); !strings.Contains(text, "upstream down") {
		t.Errorf("text = %q, want the original cause", text)
	}
}

// TestGetExerciseProgress verifies per-id sessions (most recent first) and
// the records table.
func TestGetExerciseProgress(t *testing.T) {
	ds := &fakeDataSource{workouts: []models.Workout{
		fixtureWorkout("a", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "bench", 100, 8),
		fixtureWorkout("b", time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), "bench", 110, 5),
	}}

	h := testHandlers(ds)
	res, err := h.getExerciseProgress(context.Background(), callRequest(map[string]any{
		"exercise_template_ids": "bench",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var got []struct {
		TemplateID string `json:"template_id"`
		Sessions   []struct {
			WorkoutID string `json:"workout_id"`
		} `json:"sessions"`
		RecordsByReps []struct {
			Reps     int     `json:"reps"`
			WeightKg float64 `json:"weight_kg"`
		} `json:"records_by_reps"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].TemplateID != "bench" {
		t.Fatalf("got %+v, want one bench entry", got)
	}
	if len(got[0].Sessions) != 2 || got[0].Sessions[0].WorkoutID != "b" {
		t.Errorf("sessions = %+v, want most recent (b) first", got[0].Sessions)
	}
	if len(got[0].RecordsByReps) != 2 || got[0].RecordsByReps[0].Reps != 5 || got[0].RecordsByReps[0].WeightKg != 110 {
		t.Errorf("records = %+v, want 110x5 then 100x8", got[0].RecordsByReps)
	}
}

// TestGetExerciseProgressTooManyIDs verifies the id-count bound is rejected
// before any fetch.
func TestGetExerciseProgressTooManyIDs(t *testing.T) {
	ids := make([]string, 11)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}

	h := testHandlers(&fakeDataSource{err: errors.New("must not be called")})
	res, err := h.getExerciseProgress(context.Background(), callRequest(map[string]any{
		"exercise_template_ids": strings.Join(ids, ","),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("11 ids accepted, want invalid-input error")
	}
}

// TestGetExerciseSummaries verifies the summary tool end to end with a
// search filter.
func TestGetExerciseSummaries(t *testing.T) {
	ds := &fakeDataSource{
		workouts: []models.Workout{
			fixtureWorkout("a", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "bench", 100, 5),
		},
		templates: []models.ExerciseTemplate{
			{ID: "bench", Title: "Bench Press", PrimaryMuscleGroup: "chest"},
			{ID: "squat", Title: "Back Squat", PrimaryMuscleGroup: "quadriceps"},
		},
	}

	h := testHandlers(ds)
	res, err := h.getExerciseSummaries(context.Background(), callRequest(map[string]any{
		"search": "bench",
	}))
	if err != nil {
		t.Fatal(err)
	}

	var got []struct {
		TemplateID string `json:"template_id"`
		Frequency  int    `json:"frequency"`
		Actual1RM  *struct {
			WeightKg float64 `json:"weight_kg"`
		} `json:"actual_1rm"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].TemplateID != "bench" || got[0].Frequency != 1 {
		t.Fatalf("summaries = %+v, want one bench summary with frequency 1", got)
	}
	if got[0].Actual1RM == nil || got[0].Actual1RM.WeightKg != 100 {
		t.Errorf("actual 1RM = %+v, want 100 kg", got[0].Actual1RM)
	}
}

// TestGetExerciseSummariesNoMatch verifies that an unmatched search yields
// the no-data signal, not an error.
func TestGetExerciseSummariesNoMatch(t *testing.T) {
	h := testHandlers(&fakeDataSource{
		templates: []models.ExerciseTemplate{{ID: "bench", Title: "Bench Press"}},
	})
	res, err := h.getExerciseSummaries(context.Background(), callRequest(map[string]any{
		"search": "deadlift",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatal("unmatched search reported as error, want no-data text")
	}
}

// TestGetMuscleVolume verifies bucketing and descending order through the
// tool surface.
func TestGetMuscleVolume(t *testing.T) {
	now := time.Now()
	ds := &fakeDataSource{
		workouts: []models.Workout{
			fixtureWorkout("a", now.AddDate(0, 0, -1), "squat", 100, 5),
			fixtureWorkout("b", now.AddDate(0, 0, -2), "bench", 60, 5),
		},
		templates: []models.ExerciseTemplate{
			{ID: "squat", Title: "Back Squat", PrimaryMuscleGroup: "quadriceps"},
			{ID: "bench", Title: "Bench Press", PrimaryMuscleGroup: "chest"},
		},
	}

	h := testHandlers(ds)
	res, err := h.getMuscleVolume(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}

	var got []struct {
		MuscleGroup string  `json:"muscle_group"`
		VolumeKg    float64 `json:"volume_kg"`
		Sets        int     `json:"sets"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].MuscleGroup != "quadriceps" || got[0].VolumeKg != 500 {
		t.Errorf("entries = %+v, want quadriceps 500 first", got)
	}
}

// TestGetRoutines verifies routine pass-through.
func TestGetRoutines(t *testing.T) {
	h := testHandlers(&fakeDataSource{routines: []models.Routine{{ID: "r1", Title: "Push Day"}}})
	res, err := h.getRoutines(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}

	var got []models.Routine
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Push Day" {
		t.Errorf("routines = %+v, want Push Day", got)
	}
}

// TestDefaultTimeRange verifies the date defaulting and flexible parsing
// used by the date-ranged tools.
func TestDefaultTimeRange(t *testing.T) {
	start, end, err := defaultTimeRange("", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := end.Sub(start); diff.Hours() < 719 || diff.Hours() > 721 {
		t.Errorf("default range = %.0f hours, want ~720", diff.Hours())
	}

	start, end, err = defaultTimeRange("2026-01-01", "2026-01-31T12:00:00Z", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 || end.Hour() != 12 {
		t.Errorf("parsed range = %v .. %v", start, end)
	}

	if _, _, err = defaultTimeRange("not-a-date", "", 30); err == nil {
		t.Error("invalid date accepted")
	}
}
