package patch

import "github.com/bytedance/sonic"

/* =========================================================
   PATCH FIELD: tri-state (absent | null | value)
   ========================================================= */

// Field records whether a JSON key was supplied at all. An explicit null is
// Present with a nil Value and clears the column; an absent key is skipped.
type Field[T any] struct {
	Present bool
	Value   *T
}

func (p *Field[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p Field[T]) Get() (*T, bool) { return p.Value, p.Present }

// IsSet is true when the caller supplied a non-null value.
func (p Field[T]) IsSet() bool { return p.Present && p.Value != nil }

func (p Field[T]) present() bool { return p.Present }

func (p Field[T]) raw() any {
	if p.Value == nil {
		return nil
	}
	return *p.Value
}

// Value builds a present field, mostly for tests and server-side patches.
func Value[T any](v T) Field[T] { return Field[T]{Present: true, Value: &v} }

// Null builds a present field that clears the column.
func Null[T any]() Field[T] { return Field[T]{Present: true} }
