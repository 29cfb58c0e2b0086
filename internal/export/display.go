package export

import (
	"fmt"
	"io"

	"github.com/claude/trainlog/internal/workout"
)

// WriteCompact prints sessions in the compact text form with per-exercise
// subtotals and volume totals. Returns the total volume across all sessions.
func WriteCompact(w io.Writer, sessions []workout.Session) float64 {
	var total float64
	for _, session := range sessions {
		fmt.Fprintf(w, "## %s\n", session.Date)
		if session.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", session.Notes)
		}
		var sessionTotal float64
		for _, ex := range session.Exercises {
			vol := ex.Volume()
			sessionTotal += vol
			fmt.Fprintf(w, "  %s; subtotal: %g\n", ex, vol)
		}
		fmt.Fprintf(w, "  Total number of exercises: %d\n", len(session.Exercises))
		fmt.Fprintf(w, "  Total volume this workout: %g\n", sessionTotal)
		total += sessionTotal
	}
	fmt.Fprintf(w, "Total volume for all workouts: %g\n", total)
	return total
}
