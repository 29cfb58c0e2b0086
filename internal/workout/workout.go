package workout

import (
	"fmt"
	"strings"
)

// Kilogram is the only weight unit the log format uses. Mixed units in one
// document are not supported.
const Kilogram = "kg"

// Weight is a lifted load with its unit.
type Weight struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Kg returns a Weight of the given amount in kilograms.
func Kg(amount float64) Weight {
	return Weight{Amount: amount, Unit: Kilogram}
}

func (w Weight) String() string {
	return fmt.Sprintf("%g%s", w.Amount, w.Unit)
}

// Set is one performed unit of an exercise: a rep count at a weight.
type Set struct {
	Repetitions int    `json:"repetitions"`
	Weight      Weight `json:"weight"`
}

// Exercise is one parsed exercise line: a standardized name and its sets,
// in the order they were written. Treated as immutable after construction.
type Exercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Volume returns the total tonnage (reps x weight summed over all sets).
func (e Exercise) Volume() float64 {
	var total float64
	for _, s := range e.Sets {
		total += float64(s.Repetitions) * s.Weight.Amount
	}
	return total
}

func (e Exercise) String() string {
	parts := make([]string, 0, len(e.Sets))
	for _, s := range e.Sets {
		parts = append(parts, fmt.Sprintf("%d - %s", s.Repetitions, s.Weight))
	}
	return fmt.Sprintf("%s: %s", e.Name, strings.Join(parts, ", "))
}

// Session is one workout day from a multi-session log: a date line, optional
// note lines, and the exercises parsed from the remaining lines.
type Session struct {
	Date      string     `json:"date"`
	Notes     string     `json:"notes"`
	Exercises []Exercise `json:"exercises"`
}

// Volume returns the total tonnage over all exercises in the session.
func (s Session) Volume() float64 {
	var total float64
	for _, e := range s.Exercises {
		total += e.Volume()
	}
	return total
}
