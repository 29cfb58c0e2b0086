package setexpr

import (
	"fmt"

	"github.com/claude/trainlog/internal/workout"
)

// Counts and weights beyond these are tokenizer bugs, not training data.
const (
	maxCount    = 10_000
	maxWeightKg = 10_000
)

// Evaluate flattens an expression tree into the ordered list of sets it
// denotes. ambient is the weight inherited from an enclosing WeightScoped
// node; pass nil at the root of a line. Evaluation is pure: the same tree
// and ambient weight always produce the same sequence.
func Evaluate(node Node, ambient *workout.Weight) ([]workout.Set, error) {
	if node == nil {
		return nil, &MalformedSetError{Reason: "empty expression"}
	}

	switch n := node.(type) {
	case BareCount:
		if err := checkReps(n.Count); err != nil {
			return nil, err
		}
		return []workout.Set{{Repetitions: n.Count, Weight: ambientOrZero(ambient)}}, nil

	case CountByCount:
		if err := checkSets(n.Sets); err != nil {
			return nil, err
		}
		if err := checkReps(n.Reps); err != nil {
			return nil, err
		}
		return repeat(n.Sets, n.Reps, ambientOrZero(ambient)), nil

	case WholeSet:
		if err := checkSets(n.Sets); err != nil {
			return nil, err
		}
		if err := checkReps(n.Reps); err != nil {
			return nil, err
		}
		if err := checkWeight(n.Weight); err != nil {
			return nil, err
		}
		return repeat(n.Sets, n.Reps, n.Weight), nil

	case WeightScoped:
		if err := checkWeight(n.Weight); err != nil {
			return nil, err
		}
		if n.Inner == nil {
			// A weight with nothing after it documents one performed set
			// whose rep count went unrecorded; it counts as a single rep.
			return []workout.Set{{Repetitions: 1, Weight: n.Weight}}, nil
		}
		scoped := n.Weight
		return Evaluate(n.Inner, &scoped)

	case FixedRepsMultiWeight:
		if err := checkReps(n.Reps); err != nil {
			return nil, err
		}
		if len(n.Weights) == 0 {
			return nil, &MalformedSetError{Reason: "multi-weight notation lists no weights"}
		}
		sets := make([]workout.Set, 0, len(n.Weights))
		for _, w := range n.Weights {
			if err := checkWeight(w); err != nil {
				return nil, err
			}
			sets = append(sets, workout.Set{Repetitions: n.Reps, Weight: w})
		}
		return sets, nil

	case Combine:
		left, err := Evaluate(n.Left, ambient)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(n.Right, ambient)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil

	default:
		return nil, &MalformedSetError{Reason: fmt.Sprintf("unknown node type %T", node)}
	}
}

func ambientOrZero(ambient *workout.Weight) workout.Weight {
	if ambient == nil {
		return workout.Kg(0)
	}
	return *ambient
}

func repeat(sets, reps int, w workout.Weight) []workout.Set {
	out := make([]workout.Set, sets)
	for i := range out {
		out[i] = workout.Set{Repetitions: reps, Weight: w}
	}
	return out
}

func checkReps(reps int) error {
	if reps == 0 {
		return &MalformedSetError{Reason: "a set of zero reps"}
	}
	if reps < 0 || reps > maxCount {
		return &NumericRangeError{What: "repetitions", Value: float64(reps)}
	}
	return nil
}

func checkSets(sets int) error {
	if sets == 0 {
		return &MalformedSetError{Reason: "a group of zero sets"}
	}
	if sets < 0 || sets > maxCount {
		return &NumericRangeError{What: "sets", Value: float64(sets)}
	}
	return nil
}

func checkWeight(w workout.Weight) error {
	if w.Amount < 0 || w.Amount > maxWeightKg {
		return &NumericRangeError{What: "weight", Value: w.Amount}
	}
	return nil
}
