package standardize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Standardizer maps raw exercise names to their canonical display form.
// Safe for concurrent use once its table is fully populated.
type Standardizer struct {
	table *Table
}

// New creates a Standardizer over the given table.
func New(table *Table) *Standardizer {
	return &Standardizer{table: table}
}

// Default returns a Standardizer with the built-in synonym table.
func Default() *Standardizer {
	return New(DefaultTable())
}

// Run standardizes a raw exercise name. The whole normalized name is tried
// against the table first, then each word individually ("lat pull-down" and
// "bp press" both resolve). Words with no synonym pass through. The result
// is title-cased for display. Run never fails: an unmatched name is the
// normalized input, not an error.
func (s *Standardizer) Run(raw string) string {
	if canonical, ok := s.table.Lookup(raw); ok {
		return title(canonical)
	}

	words := strings.Fields(raw)
	out := make([]string, 0, len(words))
	for _, word := range words {
		if canonical, ok := s.table.Lookup(word); ok {
			out = append(out, canonical)
		} else {
			out = append(out, word)
		}
	}
	return title(strings.Join(out, " "))
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}
