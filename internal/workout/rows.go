package workout

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row ready for insertion into the workouts table.
type WorkoutRow struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"user_id"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// SetRow is a row for the workout_sets table. One row per performed set.
type SetRow struct {
	WorkoutID    uuid.UUID `json:"workout_id"`
	UserID       int       `json:"user_id"`
	Date         time.Time `json:"date"`
	ExerciseName string    `json:"exercise_name"`
	SetNumber    int       `json:"set_number"`
	Repetitions  int       `json:"repetitions"`
	WeightKg     float64   `json:"weight_kg"`
}
