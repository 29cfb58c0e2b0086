package parse

import (
	"errors"
	"reflect"
	"testing"

	"github.com/claude/trainlog/internal/setexpr"
	"github.com/claude/trainlog/internal/standardize"
	"github.com/claude/trainlog/internal/workout"
)

func newParser() *Parser {
	return New(standardize.Default())
}

func set(reps int, kg float64) workout.Set {
	return workout.Set{Repetitions: reps, Weight: workout.Kg(kg)}
}

// TestParseLineScopedCombination covers the canonical line shape: a leading
// weight scoping a bare count and a group notation joined by a comma.
func TestParseLineScopedCombination(t *testing.T) {
	got, err := newParser().ParseLine("Bench press 10k: 4, 4x5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := workout.Exercise{
		Name: "Bench Press",
		Sets: []workout.Set{set(4, 10), set(5, 10), set(5, 10), set(5, 10), set(5, 10)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseLineWholeSet verifies the fully explicit NxMxW notation.
func TestParseLineWholeSet(t *testing.T) {
	got, err := newParser().ParseLine("Squat 4x5x75k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := workout.Exercise{
		Name: "Squat",
		Sets: []workout.Set{set(5, 75), set(5, 75), set(5, 75), set(5, 75)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseLineDropSet verifies the xx multi-weight notation, including a
// fractional weight and absorption of weights after the comma.
func TestParseLineDropSet(t *testing.T) {
	got, err := newParser().ParseLine("Bench 10xx75k,80k,82.5k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := workout.Exercise{
		Name: "Bench Press",
		Sets: []workout.Set{set(10, 75), set(10, 80), set(10, 82.5)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseLineWeightMentionList verifies that a comma-separated list of
// bare weights records one single-rep set per weight instead of treating
// the first weight as a scope over an empty notation.
func TestParseLineWeightMentionList(t *testing.T) {
	got, err := newParser().ParseLine("bench 75k, 80k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := workout.Exercise{
		Name: "Bench Press",
		Sets: []workout.Set{set(1, 75), set(1, 80)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseLineBareWeight verifies that a weight with no notation after it
// records one set of one rep.
func TestParseLineBareWeight(t *testing.T) {
	got, err := newParser().ParseLine("d 100k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := workout.Exercise{Name: "Deadlift", Sets: []workout.Set{set(1, 100)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseLineNoWeight verifies group notation without any weight context
// falls back to zero weight.
func TestParseLineNoWeight(t *testing.T) {
	got, err := newParser().ParseLine("Pull-ups 3x8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := workout.Exercise{Name: "Pull-Ups", Sets: []workout.Set{set(8, 0), set(8, 0), set(8, 0)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestParseLineStandardizesName verifies the synonym table applies to the
// name part of the line.
func TestParseLineStandardizesName(t *testing.T) {
	got, err := newParser().ParseLine("oh 40k: 3x8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Overhead Press" {
		t.Errorf("Name = %q, want %q", got.Name, "Overhead Press")
	}
}

// TestParseLineErrors verifies the line-scoped failure modes: missing
// notation, missing name, zero reps, unrecognized notation.
func TestParseLineErrors(t *testing.T) {
	p := newParser()
	for _, line := range []string{
		"Squat",
		"4x5",
		"Squat 4y5",
		"Squat 75k: 4,",
	} {
		if _, err := p.ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q): expected error", line)
		}
	}

	_, err := p.ParseLine("Squat 0")
	var malformed *setexpr.MalformedSetError
	if !errors.As(err, &malformed) {
		t.Errorf("zero reps: err = %v, want MalformedSetError", err)
	}
}

// TestParseNotationTreeShape verifies the parser encodes precedence as tree
// nesting: the scoped weight wraps the whole comma chain.
func TestParseNotationTreeShape(t *testing.T) {
	node, err := ParseNotation("75k: 4, 4x5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scoped, ok := node.(setexpr.WeightScoped)
	if !ok {
		t.Fatalf("root = %T, want WeightScoped", node)
	}
	if scoped.Weight != workout.Kg(75) {
		t.Errorf("scoped weight = %v, want 75kg", scoped.Weight)
	}
	combine, ok := scoped.Inner.(setexpr.Combine)
	if !ok {
		t.Fatalf("inner = %T, want Combine", scoped.Inner)
	}
	if _, ok := combine.Left.(setexpr.BareCount); !ok {
		t.Errorf("left = %T, want BareCount", combine.Left)
	}
	if _, ok := combine.Right.(setexpr.CountByCount); !ok {
		t.Errorf("right = %T, want CountByCount", combine.Right)
	}
}

// TestParseTextSkipsDatesAndBlanks verifies single-session documents parse
// with date lines, note lines, and blanks filtered out.
func TestParseTextSkipsDatesAndBlanks(t *testing.T) {
	text := "2024-03-01\n\n# heavy day\nBench press 75k: 4x5\nSquat 100k: 3x5\n"
	got, err := newParser().ParseText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got))
	}
	if got[0].Name != "Bench Press" || got[1].Name != "Squat" {
		t.Errorf("names = %q, %q", got[0].Name, got[1].Name)
	}
}

// TestParseTextFailsOnBadLine verifies the abort-on-first-error policy of
// single-file parsing, with the line number in the error.
func TestParseTextFailsOnBadLine(t *testing.T) {
	_, err := newParser().ParseText("Bench press 75k: 4x5\nSquat 0\n")
	if err == nil {
		t.Fatal("expected error")
	}
}
