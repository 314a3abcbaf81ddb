package patch

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Match int

const (
	Exact Match = iota
	Contains
)

type Filter struct {
	Column string
	Match  Match
	Value  string
}

// Search collects optional filters combined with AND. Nil or blank values are
// dropped so callers can pass request fields straight through.
type Search struct {
	filters []Filter
}

func (s *Search) Eq(column string, v *string) *Search {
	return s.add(column, Exact, v)
}

func (s *Search) Like(column string, v *string) *Search {
	return s.add(column, Contains, v)
}

func (s *Search) add(column string, m Match, v *string) *Search {
	if v == nil {
		return s
	}
	val := strings.TrimSpace(*v)
	if val == "" {
		return s
	}
	s.filters = append(s.filters, Filter{Column: column, Match: m, Value: val})
	return s
}

func (s Search) Empty() bool { return len(s.filters) == 0 }

func (s Search) Filters() []Filter {
	out := make([]Filter, len(s.filters))
	copy(out, s.filters)
	return out
}

// Apply adds the WHERE conditions to tx. An empty search is refused.
func (t Table) Apply(tx *gorm.DB, s Search) (*gorm.DB, error) {
	if s.Empty() {
		return nil, ErrNoFilters
	}
	for _, f := range s.filters {
		if !t.Allows(f.Column) {
			return nil, errors.Wrapf(ErrUnknownColumn, "%s.%s", t.Name, f.Column)
		}
		col := clause.Column{Name: f.Column}
		switch f.Match {
		case Contains:
			tx = tx.Where(clause.Expr{SQL: "? ILIKE ?", Vars: []any{col, "%" + EscapeLike(f.Value) + "%"}})
		default:
			tx = tx.Where(clause.Eq{Column: col, Value: f.Value})
		}
	}
	return tx, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralises LIKE wildcards in user input.
func EscapeLike(s string) string { return likeEscaper.Replace(s) }
