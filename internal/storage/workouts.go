package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/trainlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertSession stores one parsed session as a workout row plus one row per
// set, in a single transaction. Returns the new workout id and the number of
// set rows written.
func (db *DB) InsertSession(ctx context.Context, userID int, session workout.Session) (uuid.UUID, int64, error) {
	date, err := time.Parse("2006-01-02", session.Date)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("parsing session date %q: %w", session.Date, err)
	}

	workoutID := uuid.New()

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, date, notes) VALUES ($1, $2, $3, $4)`,
		workoutID, userID, date, session.Notes)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("inserting workout: %w", err)
	}

	var rows []workout.SetRow
	for _, ex := range session.Exercises {
		for i, s := range ex.Sets {
			rows = append(rows, workout.SetRow{
				WorkoutID:    workoutID,
				UserID:       userID,
				Date:         date,
				ExerciseName: ex.Name,
				SetNumber:    i + 1,
				Repetitions:  s.Repetitions,
				WeightKg:     s.Weight.Amount,
			})
		}
	}

	inserted, err := insertSetRows(ctx, tx, rows)
	if err != nil {
		return uuid.Nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, 0, fmt.Errorf("committing transaction: %w", err)
	}
	return workoutID, inserted, nil
}

func insertSetRows(ctx context.Context, tx pgx.Tx, rows []workout.SetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (workout_id, user_id, date, exercise_name,
		set_number, repetitions, weight_kg) VALUES `
	args := make([]any, 0, len(rows)*7)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, r.WorkoutID, r.UserID, r.Date, r.ExerciseName,
			r.SetNumber, r.Repetitions, r.WeightKg)
	}

	query += strings.Join(valueStrings, ",")

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryWorkouts retrieves workout summaries in a date range, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]workout.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, notes, created_at
		 FROM workouts
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []workout.WorkoutRow
	for rows.Next() {
		var r workout.WorkoutRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetWorkout reassembles one stored workout into its session form.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*workout.Session, error) {
	var date time.Time
	var notes string
	err := db.Pool.QueryRow(ctx,
		`SELECT date, notes FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, userID).Scan(&date, &notes)
	if err != nil {
		return nil, fmt.Errorf("querying workout %s: %w", workoutID, err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, set_number, repetitions, weight_kg
		 FROM workout_sets
		 WHERE workout_id = $1 AND user_id = $2
		 ORDER BY id ASC`,
		workoutID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	session := &workout.Session{Date: date.Format("2006-01-02"), Notes: notes}
	var current *workout.Exercise
	for rows.Next() {
		var name string
		var setNumber, reps int
		var weightKg float64
		if err := rows.Scan(&name, &setNumber, &reps, &weightKg); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if current == nil || current.Name != name || setNumber == 1 {
			if current != nil {
				session.Exercises = append(session.Exercises, *current)
			}
			current = &workout.Exercise{Name: name}
		}
		current.Sets = append(current.Sets, workout.Set{
			Repetitions: reps,
			Weight:      workout.Kg(weightKg),
		})
	}
	if current != nil {
		session.Exercises = append(session.Exercises, *current)
	}
	return session, rows.Err()
}

// QueryWorkoutSets retrieves set rows in a date range, optionally filtered by
// exercise name (case-insensitive partial match).
func (db *DB) QueryWorkoutSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]workout.SetRow, error) {
	query := `SELECT workout_id, user_id, date, exercise_name, set_number, repetitions, weight_kg
		 FROM workout_sets
		 WHERE date >= $1 AND date < $2 AND user_id = $3`
	args := []any{start, end, userID}
	if exerciseFilter != "" {
		query += ` AND exercise_name ILIKE $4`
		args = append(args, "%"+exerciseFilter+"%")
	}
	query += ` ORDER BY date DESC, id ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []workout.SetRow
	for rows.Next() {
		var r workout.SetRow
		if err := rows.Scan(&r.WorkoutID, &r.UserID, &r.Date, &r.ExerciseName,
			&r.SetNumber, &r.Repetitions, &r.WeightKg); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ProgressionPoint is one session's aggregate for a single exercise.
type ProgressionPoint struct {
	Date      time.Time `json:"date"`
	Sets      int64     `json:"sets"`
	TotalReps int64     `json:"total_reps"`
	MaxWeight float64   `json:"max_weight_kg"`
	Volume    float64   `json:"volume_kg"`
}

// GetExerciseProgression returns per-session aggregates for one exercise,
// oldest first, for trend charts.
func (db *DB) GetExerciseProgression(ctx context.Context, exercise string, start, end time.Time, userID int) ([]ProgressionPoint, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date, COUNT(*), SUM(repetitions), MAX(weight_kg), SUM(repetitions * weight_kg)
		 FROM workout_sets
		 WHERE exercise_name ILIKE $1 AND date >= $2 AND date < $3 AND user_id = $4
		 GROUP BY date
		 ORDER BY date ASC`,
		"%"+exercise+"%", start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying progression: %w", err)
	}
	defer rows.Close()

	var result []ProgressionPoint
	for rows.Next() {
		var p ProgressionPoint
		if err := rows.Scan(&p.Date, &p.Sets, &p.TotalReps, &p.MaxWeight, &p.Volume); err != nil {
			return nil, fmt.Errorf("scanning progression point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// VolumePeriod is aggregated training volume for one time bucket.
type VolumePeriod struct {
	Period    time.Time `json:"period"`
	Workouts  int64     `json:"workouts"`
	Sets      int64     `json:"sets"`
	TotalReps int64     `json:"total_reps"`
	Volume    float64   `json:"volume_kg"`
}

// GetVolumeSummary aggregates sets per period ("week" or "month").
func (db *DB) GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]VolumePeriod, error) {
	if bucket != "week" && bucket != "month" {
		bucket = "month"
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, date) AS period,
		        COUNT(DISTINCT workout_id), COUNT(*), SUM(repetitions), SUM(repetitions * weight_kg)
		 FROM workout_sets
		 WHERE date >= $2 AND date < $3 AND user_id = $4
		 GROUP BY period
		 ORDER BY period ASC`,
		bucket, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying volume summary: %w", err)
	}
	defer rows.Close()

	var result []VolumePeriod
	for rows.Next() {
		var p VolumePeriod
		if err := rows.Scan(&p.Period, &p.Workouts, &p.Sets, &p.TotalReps, &p.Volume); err != nil {
			return nil, fmt.Errorf("scanning volume period: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ExerciseStat is one exercise's lifetime totals.
type ExerciseStat struct {
	Name      string     `json:"name"`
	Sets      int64      `json:"sets"`
	MaxWeight float64    `json:"max_weight_kg"`
	LastSeen  *time.Time `json:"last_seen"`
}

// ListExercises returns every stored exercise name with totals, most
// trained first.
func (db *DB) ListExercises(ctx context.Context, userID int) ([]ExerciseStat, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, COUNT(*), MAX(weight_kg), MAX(date)
		 FROM workout_sets
		 WHERE user_id = $1
		 GROUP BY exercise_name
		 ORDER BY COUNT(*) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []ExerciseStat
	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Name, &s.Sets, &s.MaxWeight, &s.LastSeen); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
