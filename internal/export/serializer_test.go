package export

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/claude/trainlog/internal/workout"
)

func benchPress() workout.Exercise {
	return workout.Exercise{
		Name: "Bench Press",
		Sets: []workout.Set{
			{Repetitions: 4, Weight: workout.Kg(10)},
			{Repetitions: 5, Weight: workout.Kg(10)},
		},
	}
}

// TestSetCentricDocument verifies the document shape: derived workout id,
// numbered sets, constant type marker.
func TestSetCentricDocument(t *testing.T) {
	ts := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	doc := SetCentric([]workout.Exercise{benchPress()}, ts)

	if doc.WorkoutID != "w_20240301_183000" {
		t.Errorf("WorkoutID = %q", doc.WorkoutID)
	}
	if doc.Type != "set-centric" {
		t.Errorf("Type = %q", doc.Type)
	}
	if len(doc.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(doc.Exercises))
	}
	ex := doc.Exercises[0]
	if ex.Equipment != "other" {
		t.Errorf("Equipment = %q", ex.Equipment)
	}
	if len(ex.Sets) != 2 || ex.Sets[0].SetNumber != 1 || ex.Sets[1].SetNumber != 2 {
		t.Errorf("set numbering wrong: %+v", ex.Sets)
	}
	if ex.Sets[1].Repetitions != 5 || ex.Sets[1].Weight != workout.Kg(10) {
		t.Errorf("set content wrong: %+v", ex.Sets[1])
	}
}

// TestSetCentricValidatesAgainstSchema verifies a serialized document passes
// the embedded JSON schema.
func TestSetCentricValidatesAgainstSchema(t *testing.T) {
	doc := SetCentric([]workout.Exercise{benchPress()}, time.Now().UTC())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateSetCentric(data); err != nil {
		t.Errorf("validation failed: %v", err)
	}
}

// TestSchemaRejectsZeroReps verifies the schema catches documents the
// evaluator should never produce — the last line of defense before export.
func TestSchemaRejectsZeroReps(t *testing.T) {
	doc := SetCentric([]workout.Exercise{{
		Name: "Bench Press",
		Sets: []workout.Set{{Repetitions: 0, Weight: workout.Kg(10)}},
	}}, time.Now().UTC())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateSetCentric(data); err == nil {
		t.Error("expected validation failure for zero repetitions")
	}
}

// TestTSVRows verifies the flattened spreadsheet rows, including the comma
// decimal weight.
func TestTSVRows(t *testing.T) {
	sessions := []workout.Session{{
		Date: "2024-03-01",
		Exercises: []workout.Exercise{{
			Name: "Squat",
			Sets: []workout.Set{
				{Repetitions: 5, Weight: workout.Kg(72.5)},
				{Repetitions: 4, Weight: workout.Kg(72.5)},
			},
		}},
	}}
	rows, err := TSVRows(sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"2024-03-01", "Squat", "", "2", "4", "72,5"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

// TestTSVRowsRejectsMixedWeights verifies an exercise whose sets vary in
// weight fails the flat export instead of silently losing data.
func TestTSVRowsRejectsMixedWeights(t *testing.T) {
	sessions := []workout.Session{{
		Date: "2024-03-01",
		Exercises: []workout.Exercise{{
			Name: "Bench Press",
			Sets: []workout.Set{
				{Repetitions: 10, Weight: workout.Kg(75)},
				{Repetitions: 10, Weight: workout.Kg(80)},
			},
		}},
	}}
	if _, err := TSVRows(sessions); err == nil {
		t.Error("expected error for mixed weights")
	}
}

// TestWriteCompact verifies the compact display output and the returned
// total volume.
func TestWriteCompact(t *testing.T) {
	sessions := []workout.Session{{
		Date:      "2024-03-01",
		Notes:     "# pr day",
		Exercises: []workout.Exercise{benchPress()},
	}}
	var sb strings.Builder
	total := WriteCompact(&sb, sessions)

	if want := 4*10.0 + 5*10.0; total != want {
		t.Errorf("total = %g, want %g", total, want)
	}
	out := sb.String()
	for _, fragment := range []string{"## 2024-03-01", "Notes: # pr day", "Bench Press", "Total volume this workout: 90"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, out)
		}
	}
}
