package mcp

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/claude/liftstats/internal/analytics"
	"github.com/claude/liftstats/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxToolResults caps list-shaped tool output, matching the upstream API's
// own page size.
const maxToolResults = 10

// defaultTimeRange returns start/end, defaulting to the last defaultDays days.
func defaultTimeRange(startStr, endStr string, defaultDays int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -defaultDays)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// optionalTime parses an optional date parameter; empty means unset.
func optionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseFlexTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Retrieve workouts in a date range, most recent first (max 10). Each workout includes its exercises, sets, total volume, and set count."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-exercise progress history and personal records. Returns recent sessions (max 10 each, most recent first) with per-session maxima, plus the all-time best weight per rep count."),
	mcp.WithString("exercise_template_ids", mcp.Required(), mcp.Description("Comma-separated exercise template ids (max 10)")),
)

var toolGetExerciseSummaries = mcp.NewTool("get_exercise_summaries",
	mcp.WithDescription("Per-exercise summaries: usage frequency, best lift per rep count, actual and estimated 1RM. Sorted by frequency, descending."),
	mcp.WithString("search", mcp.Description("Case-insensitive substring filter on exercise title")),
	mcp.WithString("start", mcp.Description("Only count workouts starting on or after this date")),
	mcp.WithString("end", mcp.Description("Only count workouts starting on or before this date")),
	mcp.WithBoolean("exclude_unused", mcp.Description("Drop exercises with zero frequency. Defaults to false.")),
)

var toolGetMuscleVolume = mcp.NewTool("get_muscle_volume",
	mcp.WithDescription("Training volume (weight x reps) and set count per primary muscle group, sorted by volume, descending."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetRoutines = mcp.NewTool("get_routines",
	mcp.WithDescription("List all saved workout routines."),
)

var toolGetExerciseTemplates = mcp.NewTool("get_exercise_templates",
	mcp.WithDescription("List exercise templates with muscle groups and equipment."),
	mcp.WithString("search", mcp.Description("Case-insensitive substring filter on template title")),
)

// --- Tool handlers ---

// workoutSummary augments a workout snapshot with its derived totals.
type workoutSummary struct {
	models.Workout
	TotalVolumeKg float64 `json:"total_volume_kg"`
	TotalSets     int     `json:"total_sets"`
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), 30)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	var inRange []models.Workout
	for _, w := range workouts {
		t := w.StartTime.Time
		if t.Before(start) || t.After(end) {
			continue
		}
		inRange = append(inRange, w)
	}
	if len(inRange) == 0 {
		return mcp.NewToolResultText("no workouts found in the given date range"), nil
	}

	sort.SliceStable(inRange, func(i, j int) bool {
		return inRange[i].StartTime.Time.After(inRange[j].StartTime.Time)
	})
	if len(inRange) > maxToolResults {
		inRange = inRange[:maxToolResults]
	}

	summaries := make([]workoutSummary, 0, len(inRange))
	for _, w := range inRange {
		vol, sets := analytics.WorkoutTotals(w)
		summaries = append(summaries, workoutSummary{Workout: w, TotalVolumeKg: vol, TotalSets: sets})
	}

	result, err := mcp.NewToolResultJSON(summaries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// exerciseProgress is the per-template result of get_exercise_progress.
type exerciseProgress struct {
	TemplateID    string                      `json:"template_id"`
	Sessions      []analytics.ProgressSession `json:"sessions"`
	RecordsByReps []analytics.RepRecord       `json:"records_by_reps"`
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idsParam, err := req.RequireString("exercise_template_ids")
	if err != nil {
		return mcp.NewToolResultError("exercise_template_ids parameter is required"), nil
	}

	var ids []string
	for _, id := range strings.Split(idsParam, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return mcp.NewToolResultError("exercise_template_ids must contain at least one id"), nil
	}
	if len(ids) > maxToolResults {
		return mcp.NewToolResultError("exercise_template_ids accepts at most 10 ids"), nil
	}

	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	results := make([]exerciseProgress, 0, len(ids))
	found := false
	for _, id := range ids {
		sessions := analytics.Sessions(id, workouts)
		records := analytics.RecordsByReps(sessions)
		if len(sessions) > 0 {
			found = true
		}

		// Most recent first for presentation; records were already folded
		// from the full chronological history.
		sort.SliceStable(sessions, func(i, j int) bool {
			return sessions[i].Date.After(sessions[j].Date)
		})
		if len(sessions) > maxToolResults {
			sessions = sessions[:maxToolResults]
		}

		results = append(results, exerciseProgress{
			TemplateID:    id,
			Sessions:      sessions,
			RecordsByReps: records,
		})
	}
	if !found {
		return mcp.NewToolResultText("no sessions found for the given exercise ids"), nil
	}

	result, err := mcp.NewToolResultJSON(results)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseSummaries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := optionalTime(req.GetString("start", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
	}
	end, err := optionalTime(req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
	}

	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_summaries workouts", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}
	templates, err := h.ds.ExerciseTemplates(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_summaries templates", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	summaries := analytics.BuildSummaries(workouts, templates, analytics.SummaryOptions{
		Search:        req.GetString("search", ""),
		ExcludeUnused: req.GetBool("exclude_unused", false),
		Start:         start,
		End:           end,
	})
	if len(summaries) == 0 {
		return mcp.NewToolResultText("no exercises matched the given filters"), nil
	}

	result, err := mcp.NewToolResultJSON(summaries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), 30)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_volume workouts", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}
	templates, err := h.ds.ExerciseTemplates(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_volume templates", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	var inRange []models.Workout
	for _, w := range workouts {
		t := w.StartTime.Time
		if t.Before(start) || t.After(end) {
			continue
		}
		inRange = append(inRange, w)
	}

	entries := analytics.AggregateMuscleVolume(inRange, templates)
	if len(entries) == 0 {
		return mcp.NewToolResultText("no training volume found in the given date range"), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRoutines(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routines, err := h.ds.Routines(ctx)
	if err != nil {
		h.log.Error("mcp get_routines", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}
	if len(routines) == 0 {
		return mcp.NewToolResultText("no routines found"), nil
	}

	result, err := mcp.NewToolResultJSON(routines)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := h.ds.ExerciseTemplates(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_templates", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	if search := req.GetString("search", ""); search != "" {
		var matched []models.ExerciseTemplate
		for _, t := range templates {
			if strings.Contains(strings.ToLower(t.Title), strings.ToLower(search)) {
				matched = append(matched, t)
			}
		}
		templates = matched
	}
	if len(templates) == 0 {
		return mcp.NewToolResultText("no exercise templates matched the given filters"), nil
	}

	result, err := mcp.NewToolResultJSON(templates)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
