package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftstats", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftstats training analytics server. Query workouts, per-exercise progress and personal records, estimated 1RM, muscle-group volume, and routines. All data comes from the configured training-log account."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
		server.ServerTool{Tool: toolGetExerciseSummaries, Handler: h.getExerciseSummaries},
		server.ServerTool{Tool: toolGetMuscleVolume, Handler: h.getMuscleVolume},
		server.ServerTool{Tool: toolGetRoutines, Handler: h.getRoutines},
		server.ServerTool{Tool: toolGetExerciseTemplates, Handler: h.getExerciseTemplates},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resTemplateCatalog, Handler: h.templateCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"liftstats://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 30 days with total volume and set counts"),
	mcp.WithMIMEType("application/json"),
)

var resTemplateCatalog = mcp.NewResource(
	"liftstats://exercise_templates",
	"Exercise Template Catalog",
	mcp.WithResourceDescription("All exercise templates with muscle groups and equipment"),
	mcp.WithMIMEType("application/json"),
)
