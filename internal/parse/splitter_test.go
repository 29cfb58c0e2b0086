package parse

import (
	"strings"
	"testing"
)

const sampleLog = `2024-03-01
# felt strong
Bench press 75k: 4x5
Squat 100k: 3x5

2024-03-03
oh 40k: 3x8
bad line without notation
d 140k: 5
`

// TestParseSessionsGroupsByBlankLine verifies date/notes/exercise grouping
// across a multi-session document.
func TestParseSessionsGroupsByBlankLine(t *testing.T) {
	sessions, lineErrs, err := newParser().ParseSessions(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Date != "2024-03-01" {
		t.Errorf("s1.Date = %q", s1.Date)
	}
	if s1.Notes != "# felt strong" {
		t.Errorf("s1.Notes = %q", s1.Notes)
	}
	if len(s1.Exercises) != 2 {
		t.Fatalf("s1 exercises = %d, want 2", len(s1.Exercises))
	}
	if s1.Exercises[0].Name != "Bench Press" {
		t.Errorf("s1 first exercise = %q", s1.Exercises[0].Name)
	}

	// Second session: the bad line is skipped, the rest survives
	s2 := sessions[1]
	if s2.Date != "2024-03-03" {
		t.Errorf("s2.Date = %q", s2.Date)
	}
	if len(s2.Exercises) != 2 {
		t.Fatalf("s2 exercises = %d, want 2", len(s2.Exercises))
	}
	if s2.Exercises[0].Name != "Overhead Press" || s2.Exercises[1].Name != "Deadlift" {
		t.Errorf("s2 exercises = %q, %q", s2.Exercises[0].Name, s2.Exercises[1].Name)
	}

	if len(lineErrs) != 1 {
		t.Fatalf("line errors = %d, want 1", len(lineErrs))
	}
	if lineErrs[0].Line != 8 {
		t.Errorf("error line = %d, want 8", lineErrs[0].Line)
	}
}

// TestParseSessionsTrailingSessionFlushed verifies a document without a
// trailing blank line still yields its last session.
func TestParseSessionsTrailingSessionFlushed(t *testing.T) {
	sessions, lineErrs, err := newParser().ParseSessions(strings.NewReader("2024-03-05\nSquat 60k: 5x5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lineErrs) != 0 {
		t.Fatalf("line errors = %v", lineErrs)
	}
	if len(sessions) != 1 || len(sessions[0].Exercises) != 1 {
		t.Fatalf("sessions = %+v", sessions)
	}
}

// TestParseSessionsEmptyInput verifies empty input yields no sessions and
// no errors.
func TestParseSessionsEmptyInput(t *testing.T) {
	sessions, lineErrs, err := newParser().ParseSessions(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 || len(lineErrs) != 0 {
		t.Errorf("sessions = %v, errors = %v", sessions, lineErrs)
	}
}
