package patch

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrNothingToUpdate = errors.New("nothing to update")
	ErrNoFilters       = errors.New("at least one filter is required")
	ErrUnknownColumn   = errors.New("column not allowed")
)

// Table describes an updatable entity: its table, key column and the columns
// a patch or a search may touch.
type Table struct {
	Name    string
	Key     string
	Columns []string
}

func (t Table) Allows(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Check rejects any column outside the allow-list.
func (t Table) Check(p Patch) error {
	for _, c := range p.Columns() {
		if !t.Allows(c) {
			return errors.Wrapf(ErrUnknownColumn, "%s.%s", t.Name, c)
		}
	}
	return nil
}

// UpdateStatement runs the UPDATE ... RETURNING * for key and returns the gorm
// result untouched. dest must be a pointer to the row model; it receives the
// post-update row. Extra scopes narrow the match (ownership and the like).
func (t Table) UpdateStatement(tx *gorm.DB, key any, p Patch, dest any, scopes ...clause.Expression) (*gorm.DB, error) {
	if p.Empty() {
		return nil, ErrNothingToUpdate
	}
	if err := t.Check(p); err != nil {
		return nil, err
	}

	q := tx.Table(t.Name).Model(dest).
		Clauses(t.setClause(tx, p, dest), clause.Returning{}).
		Where(clause.Eq{Column: clause.Column{Name: t.Key}, Value: key})
	for _, s := range scopes {
		q = q.Where(s)
	}
	// the prebuilt SET wins over the map, which gorm would sort by key
	return q.Updates(p.Map()), nil
}

// setClause assigns in patch order and stamps the model's auto-update time
// column unless the patch sets it.
func (t Table) setClause(tx *gorm.DB, p Patch, dest any) clause.Set {
	set := make(clause.Set, 0, p.Len()+1)
	for _, a := range p.Assignments() {
		set = append(set, clause.Assignment{Column: clause.Column{Name: a.Column}, Value: a.Value})
	}
	if col := touchColumn(tx, dest); col != "" && !p.Has(col) {
		set = append(set, clause.Assignment{Column: clause.Column{Name: col}, Value: tx.NowFunc()})
	}
	return set
}

func touchColumn(tx *gorm.DB, dest any) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(dest); err != nil || stmt.Schema == nil {
		return ""
	}
	for _, f := range stmt.Schema.Fields {
		if f.AutoUpdateTime > 0 && f.DBName != "" {
			return f.DBName
		}
	}
	return ""
}

// Update applies p to the row whose key column equals key. Zero matched rows
// yield ErrNotFound.
func (t Table) Update(ctx context.Context, db *gorm.DB, key any, p Patch, dest any, scopes ...clause.Expression) error {
	res, err := t.UpdateStatement(db.WithContext(ctx), key, p, dest, scopes...)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return errors.Wrapf(res.Error, "updating %s", t.Name)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Owned scopes a statement to rows whose column equals owner.
func Owned(column string, owner any) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: column}, Value: owner}
}
