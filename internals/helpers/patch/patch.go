package patch

// Source is anything that can say whether it was supplied and what it holds.
// Field[T] implements it.
type Source interface {
	present() bool
	raw() any
}

type Assignment struct {
	Column string
	Value  any
}

// Patch is an ordered list of column assignments. Setting the same column
// twice keeps the first position and the last value.
type Patch struct {
	items []Assignment
}

// Set appends column when f was supplied; absent fields are skipped.
func (p *Patch) Set(column string, f Source) *Patch {
	if f == nil || !f.present() {
		return p
	}
	return p.Put(column, f.raw())
}

// Put always assigns, for values computed on the server side.
func (p *Patch) Put(column string, value any) *Patch {
	for i := range p.items {
		if p.items[i].Column == column {
			p.items[i].Value = value
			return p
		}
	}
	p.items = append(p.items, Assignment{Column: column, Value: value})
	return p
}

func (p Patch) Empty() bool { return len(p.items) == 0 }

func (p Patch) Len() int { return len(p.items) }

func (p Patch) Assignments() []Assignment {
	out := make([]Assignment, len(p.items))
	copy(out, p.items)
	return out
}

func (p Patch) Columns() []string {
	out := make([]string, 0, len(p.items))
	for _, a := range p.items {
		out = append(out, a.Column)
	}
	return out
}

func (p Patch) Has(column string) bool {
	for _, a := range p.items {
		if a.Column == column {
			return true
		}
	}
	return false
}

func (p Patch) Map() map[string]any {
	m := make(map[string]any, len(p.items))
	for _, a := range p.items {
		m[a.Column] = a.Value
	}
	return m
}
