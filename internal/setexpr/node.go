// Package setexpr evaluates parsed set-notation expressions into flat,
// ordered lists of performed sets. The expression tree mirrors the notation
// grammar: leaves carry counts and weights, WeightScoped establishes an
// ambient weight for its subtree, and Combine joins adjacent notations on
// one exercise line.
package setexpr

import "github.com/claude/trainlog/internal/workout"

// Node is a set-notation expression. Exactly six kinds exist; Evaluate
// switches over all of them.
type Node interface{ isNode() }

// BareCount is a rep count with no explicit weight ("4"). The weight comes
// from the enclosing WeightScoped context, or zero when there is none.
type BareCount struct {
	Count int
}

// CountByCount is a group notation ("4x5"): Sets sets of Reps reps each,
// weight inherited from context.
type CountByCount struct {
	Sets int
	Reps int
}

// WholeSet is a fully explicit notation ("4x5x75k"): Sets identical sets of
// Reps reps at Weight. The explicit weight always wins over any ambient one.
type WholeSet struct {
	Sets   int
	Reps   int
	Weight workout.Weight
}

// WeightScoped establishes Weight as the ambient context for Inner ("75k: ...").
// A nil Inner is a bare weight mention with no notation after it; it stands
// for a single set of one rep at that weight.
type WeightScoped struct {
	Weight workout.Weight
	Inner  Node
}

// FixedRepsMultiWeight is the drop-set notation ("10xx 75k,80k"): one set of
// Reps reps per listed weight, in listed order.
type FixedRepsMultiWeight struct {
	Reps    int
	Weights []workout.Weight
}

// Combine concatenates two notations joined by a comma. Both sides evaluate
// under the same ambient weight; left precedes right in the output.
type Combine struct {
	Left  Node
	Right Node
}

func (BareCount) isNode()            {}
func (CountByCount) isNode()         {}
func (WholeSet) isNode()             {}
func (WeightScoped) isNode()         {}
func (FixedRepsMultiWeight) isNode() {}
func (Combine) isNode()              {}
