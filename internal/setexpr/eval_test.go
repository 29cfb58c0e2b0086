package setexpr

import (
	"errors"
	"reflect"
	"testing"

	"github.com/claude/trainlog/internal/workout"
)

func set(reps int, kg float64) workout.Set {
	return workout.Set{Repetitions: reps, Weight: workout.Kg(kg)}
}

// TestWholeSet verifies that an explicit NxMxW notation expands to exactly
// N identical sets, ignoring any ambient weight.
func TestWholeSet(t *testing.T) {
	ambient := workout.Kg(20)
	got, err := Evaluate(WholeSet{Sets: 5, Reps: 6, Weight: workout.Kg(40)}, &ambient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []workout.Set{set(6, 40), set(6, 40), set(6, 40), set(6, 40), set(6, 40)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestFixedRepsMultiWeight verifies one set per listed weight, in listed
// order — the order matters for drop sets and pyramids.
func TestFixedRepsMultiWeight(t *testing.T) {
	node := FixedRepsMultiWeight{Reps: 15, Weights: []workout.Weight{workout.Kg(40), workout.Kg(50)}}
	got, err := Evaluate(node, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []workout.Set{set(15, 40), set(15, 50)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestBareCountInheritsAmbient verifies weight inheritance from the
// enclosing scope, and the zero-weight fallback when there is no scope.
func TestBareCountInheritsAmbient(t *testing.T) {
	ambient := workout.Kg(75)
	got, err := Evaluate(BareCount{Count: 4}, &ambient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []workout.Set{set(4, 75)}; !reflect.DeepEqual(got, want) {
		t.Errorf("with ambient: got %v, want %v", got, want)
	}

	got, err = Evaluate(BareCount{Count: 4}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []workout.Set{set(4, 0)}; !reflect.DeepEqual(got, want) {
		t.Errorf("without ambient: got %v, want %v", got, want)
	}
}

// TestWeightScopedOverridesAmbient verifies that a scoped weight shadows
// whatever ambient weight surrounds it: re-evaluating the same tree under a
// different outer ambient weight yields the same result.
func TestWeightScopedOverridesAmbient(t *testing.T) {
	node := WeightScoped{Weight: workout.Kg(60), Inner: CountByCount{Sets: 3, Reps: 8}}
	want := []workout.Set{set(8, 60), set(8, 60), set(8, 60)}

	for _, ambient := range []*workout.Weight{nil, ptr(workout.Kg(100)), ptr(workout.Kg(5))} {
		got, err := Evaluate(node, ambient)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ambient %v: got %v, want %v", ambient, got, want)
		}
	}
}

// TestWeightScopedNoInner verifies that a bare weight mention with no
// notation after it stands for a single set of one rep.
func TestWeightScopedNoInner(t *testing.T) {
	got, err := Evaluate(WeightScoped{Weight: workout.Kg(75)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []workout.Set{set(1, 75)}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestCombineConcatenates verifies the concatenation law: Combine(A, B)
// under ambient w equals Evaluate(A, w) followed by Evaluate(B, w), order
// preserved.
func TestCombineConcatenates(t *testing.T) {
	left := BareCount{Count: 4}
	right := CountByCount{Sets: 4, Reps: 5}
	ambient := workout.Kg(10)

	combined, err := Evaluate(Combine{Left: left, Right: right}, &ambient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLeft, _ := Evaluate(left, &ambient)
	wantRight, _ := Evaluate(right, &ambient)
	want := append(wantLeft, wantRight...)
	if !reflect.DeepEqual(combined, want) {
		t.Errorf("got %v, want %v", combined, want)
	}
}

// TestScopedCombineLine reproduces the canonical whole-line example
// "10k: 4, 4x5": one set of 4 plus four sets of 5, all at 10kg.
func TestScopedCombineLine(t *testing.T) {
	node := WeightScoped{
		Weight: workout.Kg(10),
		Inner:  Combine{Left: BareCount{Count: 4}, Right: CountByCount{Sets: 4, Reps: 5}},
	}
	got, err := Evaluate(node, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []workout.Set{set(4, 10), set(5, 10), set(5, 10), set(5, 10), set(5, 10)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestDeterminism verifies that evaluating the same tree twice yields
// identical sequences — the evaluator holds no hidden state.
func TestDeterminism(t *testing.T) {
	node := Combine{
		Left:  WholeSet{Sets: 2, Reps: 10, Weight: workout.Kg(50)},
		Right: FixedRepsMultiWeight{Reps: 8, Weights: []workout.Weight{workout.Kg(60), workout.Kg(55)}},
	}
	first, err := Evaluate(node, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Evaluate(node, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ: %v vs %v", first, second)
	}
}

// TestZeroRepsRejected verifies that a zero-rep count fails with
// MalformedSetError rather than silently producing a zero-rep entry.
func TestZeroRepsRejected(t *testing.T) {
	for _, node := range []Node{
		BareCount{Count: 0},
		CountByCount{Sets: 3, Reps: 0},
		CountByCount{Sets: 0, Reps: 5},
		WholeSet{Sets: 2, Reps: 0, Weight: workout.Kg(40)},
		FixedRepsMultiWeight{Reps: 0, Weights: []workout.Weight{workout.Kg(40)}},
	} {
		_, err := Evaluate(node, nil)
		var malformed *MalformedSetError
		if !errors.As(err, &malformed) {
			t.Errorf("%#v: err = %v, want MalformedSetError", node, err)
		}
	}
}

// TestNumericRangeRejected verifies the defensive bounds on literals that a
// buggy tokenizer could let through.
func TestNumericRangeRejected(t *testing.T) {
	for _, node := range []Node{
		BareCount{Count: -1},
		BareCount{Count: maxCount + 1},
		CountByCount{Sets: -2, Reps: 5},
		WholeSet{Sets: 2, Reps: 5, Weight: workout.Kg(-10)},
		WeightScoped{Weight: workout.Kg(maxWeightKg + 1)},
		FixedRepsMultiWeight{Reps: 5, Weights: []workout.Weight{workout.Kg(-1)}},
	} {
		_, err := Evaluate(node, nil)
		var ranged *NumericRangeError
		if !errors.As(err, &ranged) {
			t.Errorf("%#v: err = %v, want NumericRangeError", node, err)
		}
	}
}

// TestCombineFailurePropagates verifies that a malformed subtree rejects the
// whole expression — no partial output survives.
func TestCombineFailurePropagates(t *testing.T) {
	node := Combine{Left: BareCount{Count: 5}, Right: BareCount{Count: 0}}
	sets, err := Evaluate(node, nil)
	if err == nil {
		t.Fatalf("expected error, got %v", sets)
	}
	if sets != nil {
		t.Errorf("partial output %v survived a failed evaluation", sets)
	}
}

// TestNilSubtreeRejected verifies that a nil node (parser bug) is reported
// as malformed rather than panicking.
func TestNilSubtreeRejected(t *testing.T) {
	_, err := Evaluate(nil, nil)
	var malformed *MalformedSetError
	if !errors.As(err, &malformed) {
		t.Errorf("err = %v, want MalformedSetError", err)
	}
	_, err = Evaluate(Combine{Left: BareCount{Count: 3}, Right: nil}, nil)
	if !errors.As(err, &malformed) {
		t.Errorf("combine with nil right: err = %v, want MalformedSetError", err)
	}
}

func ptr(w workout.Weight) *workout.Weight { return &w }
