// Package standardize canonicalizes free-text exercise names against a
// synonym table. Matching is case- and accent-insensitive; unknown names
// pass through unchanged apart from whitespace and casing cleanup.
package standardize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Entry maps one canonical exercise name to its accepted shorthand spellings.
type Entry struct {
	Canonical string   `yaml:"canonical" json:"canonical"`
	Synonyms  []string `yaml:"synonyms" json:"synonyms"`
}

// Table is the synonym lookup table. It is populated once and read-only
// afterwards: Extend must only be called before lookups begin (single writer,
// then many readers — no locking needed under that discipline).
type Table struct {
	entries []Entry
	byKey   map[string]string // folded synonym or canonical -> canonical
}

// DefaultEntries is the built-in synonym set.
var DefaultEntries = []Entry{
	{Canonical: "overhead press", Synonyms: []string{"oh", "op"}},
	{Canonical: "inclined bench press", Synonyms: []string{"ibp"}},
	{Canonical: "bench press", Synonyms: []string{"bench", "bp"}},
	{Canonical: "machine lateral pull-down", Synonyms: []string{"lat pull-down", "lat pull down", "mlpd"}},
	{Canonical: "lateral pull-down", Synonyms: []string{"lpd"}},
	{Canonical: "machine row", Synonyms: []string{"mr"}},
	{Canonical: "low row", Synonyms: []string{"lr"}},
	{Canonical: "row", Synonyms: []string{"r"}},
	{Canonical: "barbell row", Synonyms: []string{"br"}},
	{Canonical: "squat", Synonyms: []string{"s"}},
	{Canonical: "deadlift", Synonyms: []string{"d"}},
	{Canonical: "leg extension", Synonyms: []string{"le"}},
	{Canonical: "leg curl", Synonyms: []string{"lc"}},
	{Canonical: "machine", Synonyms: []string{"m"}},
	{Canonical: "smith machine", Synonyms: []string{"sm"}},
}

// NewTable builds a validated table from the given entries. Canonical names
// must be unique, and no synonym may appear twice across the whole table —
// an ambiguous synonym would make standardization nondeterministic.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{byKey: make(map[string]string)}
	if err := t.add(entries); err != nil {
		return nil, err
	}
	return t, nil
}

// DefaultTable returns a table with the built-in synonym set.
func DefaultTable() *Table {
	t, err := NewTable(DefaultEntries)
	if err != nil {
		panic("standardize: built-in synonym table is invalid: " + err.Error())
	}
	return t
}

// Extend adds entries to the table. Call only before the first lookup.
func (t *Table) Extend(entries ...Entry) error {
	return t.add(entries)
}

func (t *Table) add(entries []Entry) error {
	seen := make(map[string]bool, len(t.entries))
	for _, e := range t.entries {
		seen[Fold(e.Canonical)] = true
	}

	for _, e := range entries {
		canonical := Fold(e.Canonical)
		if canonical == "" {
			return fmt.Errorf("entry with empty canonical name")
		}
		if seen[canonical] {
			return fmt.Errorf("duplicate canonical name %q", e.Canonical)
		}
		if mapped, dup := t.byKey[canonical]; dup {
			return fmt.Errorf("canonical name %q is already a synonym of %q", e.Canonical, mapped)
		}
		seen[canonical] = true

		// The canonical maps to itself so a whole-name lookup on an
		// already-canonical input short-circuits; without this, the
		// per-word pass would re-expand synonym words inside it.
		t.byKey[canonical] = e.Canonical

		for _, syn := range e.Synonyms {
			key := Fold(syn)
			if key == "" {
				return fmt.Errorf("entry %q has an empty synonym", e.Canonical)
			}
			if _, dup := t.byKey[key]; dup {
				return fmt.Errorf("synonym %q appears more than once", syn)
			}
			t.byKey[key] = e.Canonical
		}
		t.entries = append(t.entries, e)
	}
	return nil
}

// Lookup returns the canonical name for a folded key, if any.
func (t *Table) Lookup(key string) (string, bool) {
	canonical, ok := t.byKey[Fold(key)]
	return canonical, ok
}

// Entries returns the table contents in insertion order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// accent marks are stripped for matching only, never for display
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a string for comparison: trimmed, inner whitespace
// collapsed, lower-cased, accents removed.
func Fold(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}
