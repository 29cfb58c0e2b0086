package mcp

import (
	"context"
	"time"

	"github.com/claude/trainlog/internal/storage"
	"github.com/claude/trainlog/internal/workout"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]workout.WorkoutRow, error)
	QueryWorkoutSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]workout.SetRow, error)
	GetExerciseProgression(ctx context.Context, exercise string, start, end time.Time, userID int) ([]storage.ProgressionPoint, error)
	GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]storage.VolumePeriod, error)
	ListExercises(ctx context.Context, userID int) ([]storage.ExerciseStat, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
