package setexpr

import "fmt"

// MalformedSetError reports a structurally invalid expression: a zero-rep
// count, a nil subtree, or a line that evaluates to no sets at all. The
// whole line is rejected; there is no partial recovery within a line.
type MalformedSetError struct {
	Reason string
}

func (e *MalformedSetError) Error() string {
	return "malformed set: " + e.Reason
}

// NumericRangeError reports a numeric literal outside the range the notation
// can sensibly express. The upstream tokenizer should never produce one, but
// literal handling has changed across grammar revisions, so the evaluator
// checks anyway.
type NumericRangeError struct {
	What  string
	Value float64
}

func (e *NumericRangeError) Error() string {
	return fmt.Sprintf("numeric value out of range: %s = %g", e.What, e.Value)
}
