// Package parse turns raw training-log text into workout records. A line
// like "Bench press 75k: 4, 4x5" splits into an exercise name and a set
// notation; the notation is parsed into a setexpr tree and flattened into
// ordered sets, and the name is standardized against the synonym table.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/trainlog/internal/setexpr"
	"github.com/claude/trainlog/internal/standardize"
	"github.com/claude/trainlog/internal/workout"
)

var (
	// scopedWeightRe matches a leading ambient weight: "75k:" or "75k"
	scopedWeightRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)k\s*:?\s*(.*)$`)

	// wholeSetRe matches "4x5x75k" (sets x reps x weight)
	wholeSetRe = regexp.MustCompile(`^(\d+)\s*x\s*(\d+)\s*x\s*(\d+(?:\.\d+)?)k?$`)

	// multiWeightRe matches the drop-set head "10xx75k" or "10xx 75k"
	multiWeightRe = regexp.MustCompile(`^(\d+)\s*xx\s*(\d+(?:\.\d+)?)k?$`)

	// countByCountRe matches "4x5" (sets x reps)
	countByCountRe = regexp.MustCompile(`^(\d+)\s*x\s*(\d+)$`)

	// bareCountRe matches a lone rep count "4"
	bareCountRe = regexp.MustCompile(`^\d+$`)

	// weightLitRe matches a lone weight literal "75k" or "72.5k"
	weightLitRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)k$`)

	// dateLineRe matches a session date line "2024-03-01"
	dateLineRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Parser converts exercise lines into workout records.
type Parser struct {
	std *standardize.Standardizer
}

// New creates a Parser using the given name standardizer.
func New(std *standardize.Standardizer) *Parser {
	return &Parser{std: std}
}

// ParseLine parses one exercise line into a record: name standardized, set
// notation evaluated into ordered sets. Fails on lines with no notation, no
// name, or a notation that evaluates to no sets.
func (p *Parser) ParseLine(line string) (workout.Exercise, error) {
	name, notation := splitLine(line)
	if notation == "" {
		return workout.Exercise{}, fmt.Errorf("line %q has no set notation", strings.TrimSpace(line))
	}
	if name == "" {
		return workout.Exercise{}, fmt.Errorf("line %q has no exercise name", strings.TrimSpace(line))
	}

	node, err := ParseNotation(notation)
	if err != nil {
		return workout.Exercise{}, err
	}

	sets, err := setexpr.Evaluate(node, nil)
	if err != nil {
		return workout.Exercise{}, err
	}
	if len(sets) == 0 {
		return workout.Exercise{}, &setexpr.MalformedSetError{Reason: "line documents no sets"}
	}

	return workout.Exercise{Name: p.std.Run(name), Sets: sets}, nil
}

// ParseText parses a whole single-session document, skipping blank lines and
// bare date lines. The first malformed line fails the parse.
func (p *Parser) ParseText(text string) ([]workout.Exercise, error) {
	var exercises []workout.Exercise
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dateLineRe.MatchString(line) || strings.HasPrefix(line, "#") {
			continue
		}
		ex, err := p.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

// splitLine separates the exercise name from the set notation. The notation
// starts at the first whitespace-delimited token that begins with a digit.
func splitLine(line string) (name, notation string) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if f[0] >= '0' && f[0] <= '9' {
			return strings.Join(fields[:i], " "), strings.Join(fields[i:], " ")
		}
	}
	return strings.Join(fields, " "), ""
}

// ParseNotation parses a set-notation string into an expression tree. An
// optional leading weight ("75k:" or "75k") scopes the rest of the line;
// comma-separated notations combine left to right.
func ParseNotation(s string) (setexpr.Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &setexpr.MalformedSetError{Reason: "empty notation"}
	}

	if m := scopedWeightRe.FindStringSubmatch(s); m != nil {
		rest := strings.TrimSpace(m[2])
		if strings.HasPrefix(rest, ",") {
			// "75k, 80k" is a list of weight mentions, not a scope
			return parseList(s)
		}
		w, err := parseWeight(m[1])
		if err != nil {
			return nil, err
		}
		if rest == "" {
			return setexpr.WeightScoped{Weight: w}, nil
		}
		inner, err := parseList(rest)
		if err != nil {
			return nil, err
		}
		return setexpr.WeightScoped{Weight: w, Inner: inner}, nil
	}

	return parseList(s)
}

// parseList parses comma-separated notations into a left-leaning Combine
// chain. A multi-weight head ("10xx75k") absorbs the following parts that
// are bare weight literals, so "10xx75k,80k" reads as one drop set.
func parseList(s string) (setexpr.Node, error) {
	parts := strings.Split(s, ",")
	var root setexpr.Node

	for i := 0; i < len(parts); i++ {
		part := strings.TrimSpace(parts[i])
		if part == "" {
			return nil, &setexpr.MalformedSetError{Reason: "empty notation between commas"}
		}

		var node setexpr.Node
		if m := multiWeightRe.FindStringSubmatch(part); m != nil {
			reps, err := parseCount(m[1])
			if err != nil {
				return nil, err
			}
			first, err := parseWeight(m[2])
			if err != nil {
				return nil, err
			}
			weights := []workout.Weight{first}
			for i+1 < len(parts) {
				next := strings.TrimSpace(parts[i+1])
				wm := weightLitRe.FindStringSubmatch(next)
				if wm == nil {
					break
				}
				w, err := parseWeight(wm[1])
				if err != nil {
					return nil, err
				}
				weights = append(weights, w)
				i++
			}
			node = setexpr.FixedRepsMultiWeight{Reps: reps, Weights: weights}
		} else if m := wholeSetRe.FindStringSubmatch(part); m != nil {
			sets, err := parseCount(m[1])
			if err != nil {
				return nil, err
			}
			reps, err := parseCount(m[2])
			if err != nil {
				return nil, err
			}
			w, err := parseWeight(m[3])
			if err != nil {
				return nil, err
			}
			node = setexpr.WholeSet{Sets: sets, Reps: reps, Weight: w}
		} else if m := countByCountRe.FindStringSubmatch(part); m != nil {
			sets, err := parseCount(m[1])
			if err != nil {
				return nil, err
			}
			reps, err := parseCount(m[2])
			if err != nil {
				return nil, err
			}
			node = setexpr.CountByCount{Sets: sets, Reps: reps}
		} else if bareCountRe.MatchString(part) {
			count, err := parseCount(part)
			if err != nil {
				return nil, err
			}
			node = setexpr.BareCount{Count: count}
		} else if m := weightLitRe.FindStringSubmatch(part); m != nil {
			w, err := parseWeight(m[1])
			if err != nil {
				return nil, err
			}
			node = setexpr.WeightScoped{Weight: w}
		} else {
			return nil, &setexpr.MalformedSetError{Reason: fmt.Sprintf("unrecognized notation %q", part)}
		}

		if root == nil {
			root = node
		} else {
			root = setexpr.Combine{Left: root, Right: node}
		}
	}

	return root, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &setexpr.NumericRangeError{What: "count " + s, Value: 0}
	}
	return n, nil
}

func parseWeight(s string) (workout.Weight, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return workout.Weight{}, &setexpr.NumericRangeError{What: "weight " + s, Value: 0}
	}
	return workout.Kg(amount), nil
}
