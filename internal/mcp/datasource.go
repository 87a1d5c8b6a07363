package mcp

import (
	"context"

	"github.com/claude/liftstats/internal/api"
	"github.com/claude/liftstats/internal/models"
)

// DataSource abstracts the remote training-log API for MCP tools. The only
// production implementation is *api.Client; tests substitute a fake.
type DataSource interface {
	Workouts(ctx context.Context) ([]models.Workout, error)
	ExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error)
	Routines(ctx context.Context) ([]models.Routine, error)
}

// Compile-time check: *api.Client satisfies DataSource.
var _ DataSource = (*api.Client)(nil)
