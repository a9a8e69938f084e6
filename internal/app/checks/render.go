package checks

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// DefaultNameBudget is the display width for abbreviated check names.
const DefaultNameBudget = 20

// DisplayName is a check name prepared for display. It serializes as the
// bare abbreviated string.
type DisplayName struct {
	Full  string
	Short string
}

// NewDisplayName abbreviates name to budget characters.
func NewDisplayName(name string, budget int) DisplayName {
	return DisplayName{Full: name, Short: Abbreviate(name, budget)}
}

func (n DisplayName) String() string { return n.Short }

// MarshalText implements encoding.TextMarshaler.
func (n DisplayName) MarshalText() ([]byte, error) {
	return []byte(n.Short), nil
}

// Entry is one row of a rendered view.
type Entry struct {
	Name     DisplayName
	Severity check.Severity
	Result   check.Result
}

// Render turns results into display entries sorted by severity, worst first,
// then by name. Unless showAll is set, healthy entries are dropped whenever
// the worst entry is not healthy; an all-healthy view is never filtered.
func Render(results map[string]check.Result, showAll bool) []Entry {
	return RenderWithBudget(results, showAll, DefaultNameBudget)
}

// RenderWithBudget is Render with an explicit name budget.
func RenderWithBudget(results map[string]check.Result, showAll bool, budget int) []Entry {
	entries := make([]Entry, 0, len(results))
	for name, res := range results {
		entries = append(entries, Entry{
			Name:     NewDisplayName(name, budget),
			Severity: res.Severity(),
			Result:   res,
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
			return c
		}
		return cmp.Compare(a.Name.Full, b.Name.Full)
	})

	if showAll || len(entries) == 0 || entries[0].Severity == check.SeverityHealthy {
		return entries
	}
	return slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Severity == check.SeverityHealthy
	})
}

// Abbreviate shortens a dotted name to at most budget characters where
// possible. Leading segments are cut to their first character, left to
// right, until the name fits; the final segment is always kept whole, so the
// result may still exceed budget. A budget of zero or less yields only the
// final segment.
//
//	Abbreviate("com.example.database.primary", 20) == "c.e.database.primary"
func Abbreviate(name string, budget int) string {
	if utf8.RuneCountInString(name) <= budget {
		return name
	}

	segments := strings.Split(name, ".")
	if len(segments) == 1 {
		return name
	}
	if budget <= 0 {
		return segments[len(segments)-1]
	}

	length := utf8.RuneCountInString(name)
	for i := 0; i < len(segments)-1 && length > budget; i++ {
		seg := segments[i]
		n := utf8.RuneCountInString(seg)
		if n <= 1 {
			continue
		}
		_, size := utf8.DecodeRuneInString(seg)
		segments[i] = seg[:size]
		length -= n - 1
	}
	return strings.Join(segments, ".")
}
