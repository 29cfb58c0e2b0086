package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/claude/trainlog/internal/workout"
)

// LineError records one exercise line that failed to parse, with its
// position in the document.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

// ParseSessions reads a multi-session log and groups it into workouts.
//
// Session format: the first plain line of a block is the date, lines
// starting with '#' are notes, the remaining lines are exercises, and a
// blank line ends the session.
//
// Malformed exercise lines are collected and skipped rather than aborting
// the document; one bad line costs that line only. Callers that want
// abort-on-first-error check the returned slice.
func (p *Parser) ParseSessions(r io.Reader) ([]workout.Session, []LineError, error) {
	scanner := bufio.NewScanner(r)

	var sessions []workout.Session
	var lineErrs []LineError
	var current *workout.Session
	var notes []string
	lineNo := 0

	flush := func() {
		if current != nil {
			current.Notes = strings.Join(notes, "\n")
			sessions = append(sessions, *current)
			current = nil
		}
		notes = nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			notes = append(notes, line)
			continue
		}
		if current == nil {
			current = &workout.Session{Date: line}
			continue
		}

		ex, err := p.ParseLine(line)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		current.Exercises = append(current.Exercises, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, lineErrs, fmt.Errorf("reading log: %w", err)
	}
	flush()

	return sessions, lineErrs, nil
}
