// Package export serializes parsed workouts into the set-centric JSON
// document, the multi-session batch formats (JSON and TSV), and the compact
// text display.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/trainlog/internal/workout"
)

// SetJSON is one set inside an exported exercise block.
type SetJSON struct {
	SetNumber   int            `json:"setNumber"`
	Repetitions int            `json:"repetitions"`
	Weight      workout.Weight `json:"weight"`
}

// ExerciseJSON is one exercise block in the set-centric document.
type ExerciseJSON struct {
	Name      string    `json:"name"`
	Equipment string    `json:"equipment"`
	Sets      []SetJSON `json:"sets"`
}

// SetCentricDoc is the set-centric workout document.
type SetCentricDoc struct {
	WorkoutID  string         `json:"workout_id"`
	Type       string         `json:"type"`
	Date       string         `json:"date"`
	Location   string         `json:"location"`
	Notes      string         `json:"notes"`
	Statistics map[string]any `json:"statistics"`
	Exercises  []ExerciseJSON `json:"exercises"`
}

// SetCentric builds a set-centric document from parsed exercises. The
// workout id derives from the timestamp, so the same parse at the same
// instant serializes identically.
func SetCentric(exercises []workout.Exercise, ts time.Time) SetCentricDoc {
	doc := SetCentricDoc{
		WorkoutID:  "w_" + ts.Format("20060102_150405"),
		Type:       "set-centric",
		Date:       ts.Format(time.RFC3339),
		Statistics: map[string]any{},
		Exercises:  make([]ExerciseJSON, 0, len(exercises)),
	}
	for _, ex := range exercises {
		doc.Exercises = append(doc.Exercises, exerciseJSON(ex))
	}
	return doc
}

func exerciseJSON(ex workout.Exercise) ExerciseJSON {
	block := ExerciseJSON{
		Name:      ex.Name,
		Equipment: "other",
		Sets:      make([]SetJSON, 0, len(ex.Sets)),
	}
	for i, s := range ex.Sets {
		block.Sets = append(block.Sets, SetJSON{
			SetNumber:   i + 1,
			Repetitions: s.Repetitions,
			Weight:      s.Weight,
		})
	}
	return block
}

// SessionJSON is one workout in the multi-session batch export.
type SessionJSON struct {
	Date      string             `json:"date"`
	Notes     string             `json:"notes"`
	Exercises []workout.Exercise `json:"exercises"`
}

// Sessions converts parsed sessions to their batch JSON form.
func Sessions(sessions []workout.Session) []SessionJSON {
	out := make([]SessionJSON, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionJSON{Date: s.Date, Notes: s.Notes, Exercises: s.Exercises})
	}
	return out
}

// TSVRows flattens sessions into spreadsheet rows: date, exercise name, an
// empty column, set count, mean reps, and the weight with a comma decimal.
// The format assumes one weight per exercise; an exercise whose sets vary in
// weight cannot be represented and fails the export.
func TSVRows(sessions []workout.Session) ([][]string, error) {
	var rows [][]string
	for _, session := range sessions {
		for _, ex := range session.Exercises {
			if len(ex.Sets) == 0 {
				continue
			}
			first := ex.Sets[0].Weight.Amount
			repsTotal := 0
			for _, s := range ex.Sets {
				if s.Weight.Amount != first {
					return nil, fmt.Errorf("exercise %q mixes weights; not representable as a TSV row", ex.Name)
				}
				repsTotal += s.Repetitions
			}
			meanReps := repsTotal / len(ex.Sets)
			rows = append(rows, []string{
				session.Date,
				ex.Name,
				"",
				fmt.Sprintf("%d", len(ex.Sets)),
				fmt.Sprintf("%d", meanReps),
				commaDecimal(first),
			})
		}
	}
	return rows, nil
}

// commaDecimal renders a weight with one decimal and a comma separator
// ("72,5"), the locale the downstream spreadsheet expects.
func commaDecimal(v float64) string {
	return strings.Replace(fmt.Sprintf("%.1f", v), ".", ",", 1)
}
