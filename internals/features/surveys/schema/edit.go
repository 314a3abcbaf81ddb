package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"surveyhub_backend/internals/helpers/patch"
)

type PagePatch struct {
	Title       patch.Field[string] `json:"title"`
	Description patch.Field[string] `json:"description"`
}

// ElementPatch carries the element fields a builder may change. The name is
// the element's identity and cannot be patched.
type ElementPatch struct {
	Title       patch.Field[string]  `json:"title"`
	Description patch.Field[string]  `json:"description"`
	IsRequired  patch.Field[bool]    `json:"isRequired"`
	InputType   patch.Field[string]  `json:"inputType"`
	Choices     patch.Field[[]any]   `json:"choices"`
	Items       patch.Field[[]Item]  `json:"items"`
	RateMin     patch.Field[float64] `json:"rateMin"`
	RateMax     patch.Field[float64] `json:"rateMax"`
	RateStep    patch.Field[float64] `json:"rateStep"`
	Min         patch.Field[float64] `json:"min"`
	Max         patch.Field[float64] `json:"max"`

	// Other keys are merged into Element.Extra as they are.
	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

/* =========================================================
   PAGES
   ========================================================= */

// AddPage appends an empty page. A blank title becomes "Section N".
func AddPage(d Document, title string) Document {
	if title == "" {
		title = fmt.Sprintf("Section %d", len(d.Pages)+1)
	}
	pages := make([]Page, len(d.Pages), len(d.Pages)+1)
	copy(pages, d.Pages)
	pages = append(pages, Page{
		ID:       uuid.NewString(),
		Title:    title,
		Elements: []Element{},
	})
	d.Pages = pages
	return d
}

func UpdatePage(d Document, pageID string, p PagePatch) Document {
	return withPage(d, pageID, func(pg Page) Page {
		if p.Title.Present {
			pg.Title = deref(p.Title.Value)
		}
		if p.Description.Present {
			pg.Description = deref(p.Description.Value)
		}
		return pg
	})
}

func RemovePage(d Document, pageID string) Document {
	i := d.pageIndex(pageID)
	if i < 0 {
		return d
	}
	pages := make([]Page, 0, len(d.Pages)-1)
	pages = append(pages, d.Pages[:i]...)
	pages = append(pages, d.Pages[i+1:]...)
	d.Pages = pages
	return d
}

/* =========================================================
   ELEMENTS
   ========================================================= */

// AddElementByKind appends a fresh element of kind to the page.
func AddElementByKind(d Document, pageID string, kind Kind) (Document, error) {
	if !kind.Valid() {
		return d, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	return withPage(d, pageID, func(pg Page) Page {
		e, _ := NewElement(kind, nextName(pg))
		els := make([]Element, len(pg.Elements), len(pg.Elements)+1)
		copy(els, pg.Elements)
		pg.Elements = append(els, e)
		return pg
	}), nil
}

func UpdateElement(d Document, pageID, name string, p ElementPatch) Document {
	return withElement(d, pageID, name, func(e Element) Element {
		return p.apply(e)
	})
}

func RemoveElement(d Document, pageID, name string) Document {
	return withPage(d, pageID, func(pg Page) Page {
		i := pg.elementIndex(name)
		if i < 0 {
			return pg
		}
		els := make([]Element, 0, len(pg.Elements)-1)
		els = append(els, pg.Elements[:i]...)
		pg.Elements = append(els, pg.Elements[i+1:]...)
		return pg
	})
}

// ChangeElementKind swaps the element for a fresh one of next. Name, title,
// description and the required flag carry over; everything else resets.
func ChangeElementKind(d Document, pageID, name string, next Kind) (Document, error) {
	if !next.Valid() {
		return d, errors.Wrapf(ErrUnknownKind, "%q", next)
	}
	return withElement(d, pageID, name, func(old Element) Element {
		e, _ := NewElement(next, old.Name)
		e.Title, e.titleLocales = old.Title, old.titleLocales
		e.Description, e.descriptionLocales = old.Description, old.descriptionLocales
		e.IsRequired = old.IsRequired
		return e
	}), nil
}

/* =========================================================
   path rebuilding
   ========================================================= */

func withPage(d Document, pageID string, fn func(Page) Page) Document {
	i := d.pageIndex(pageID)
	if i < 0 {
		return d
	}
	pages := make([]Page, len(d.Pages))
	copy(pages, d.Pages)
	pages[i] = fn(pages[i])
	d.Pages = pages
	return d
}

func withElement(d Document, pageID, name string, fn func(Element) Element) Document {
	return withPage(d, pageID, func(pg Page) Page {
		i := pg.elementIndex(name)
		if i < 0 {
			return pg
		}
		els := make([]Element, len(pg.Elements))
		copy(els, pg.Elements)
		els[i] = fn(els[i])
		pg.Elements = els
		return pg
	})
}

func (p ElementPatch) apply(e Element) Element {
	if p.Title.Present {
		e.Title = deref(p.Title.Value)
	}
	if p.Description.Present {
		e.Description = deref(p.Description.Value)
	}
	if p.IsRequired.Present {
		e.IsRequired = deref(p.IsRequired.Value)
	}
	if p.InputType.Present {
		e.InputType = deref(p.InputType.Value)
	}
	if p.Choices.Present {
		e.Choices = deref(p.Choices.Value)
	}
	if p.Items.Present {
		e.Items = deref(p.Items.Value)
	}
	setFloat(&e.RateMin, p.RateMin)
	setFloat(&e.RateMax, p.RateMax)
	setFloat(&e.RateStep, p.RateStep)
	setFloat(&e.Min, p.Min)
	setFloat(&e.Max, p.Max)

	if len(p.Extra) > 0 {
		extra := make(map[string]json.RawMessage, len(e.Extra)+len(p.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		for k, v := range p.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}
	return e
}

func setFloat(dst **float64, f patch.Field[float64]) {
	if !f.Present {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
