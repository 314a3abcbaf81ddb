package schema

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Document is the page/element tree stored in schema_json. It is treated as
// immutable: every edit in this package returns a new Document and leaves
// the receiver's slices and maps alone.
type Document struct {
	Pages []Page

	// Extra keeps top-level keys this package does not model (theme,
	// progress bar flags and the like) so they survive a round trip.
	Extra map[string]json.RawMessage
}

type Page struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Elements    []Element `json:"elements"`
}

// Key is the page identifier used by edits. Pages imported from elsewhere may
// only carry a name.
func (p Page) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

type Item struct {
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	InputType string `json:"inputType,omitempty"`
}

// Element is one question of a page, in the external survey-builder shape.
type Element struct {
	Name        string
	Type        string
	Kind        Kind
	Title       string
	Description string
	IsRequired  bool
	InputType   string
	Choices     []any
	Items       []Item
	RateMin     *float64
	RateMax     *float64
	RateStep    *float64
	Min         *float64
	Max         *float64

	Extra map[string]json.RawMessage

	// original localized {"default": ..., "<locale>": ...} objects, when
	// title or description arrived in that form
	titleLocales       json.RawMessage
	descriptionLocales json.RawMessage
}

// Parse decodes schema_json. Empty input and JSON null give an empty document.
func Parse(raw []byte) (Document, error) {
	var d Document
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return d, nil
	}
	err := json.Unmarshal(raw, &d)
	return d, err
}

func (d Document) Page(id string) (Page, bool) {
	if i := d.pageIndex(id); i >= 0 {
		return d.Pages[i], true
	}
	return Page{}, false
}

func (d Document) Element(pageID, name string) (Element, bool) {
	p, ok := d.Page(pageID)
	if !ok {
		return Element{}, false
	}
	if i := p.elementIndex(name); i >= 0 {
		return p.Elements[i], true
	}
	return Element{}, false
}

// HasQuestions reports whether any page holds at least one element.
func (d Document) HasQuestions() bool {
	for _, p := range d.Pages {
		if len(p.Elements) > 0 {
			return true
		}
	}
	return false
}

func (d Document) pageIndex(id string) int {
	for i, p := range d.Pages {
		if p.Key() == id {
			return i
		}
	}
	return -1
}

func (p Page) elementIndex(name string) int {
	for i, e := range p.Elements {
		if e.Name == name {
			return i
		}
	}
	return -1
}

/* =========================================================
   JSON
   ========================================================= */

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	pages := d.Pages
	if pages == nil {
		pages = []Page{}
	}
	out["pages"] = pages
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Document{}
	if v, ok := raw["pages"]; ok {
		if err := json.Unmarshal(v, &d.Pages); err != nil {
			return err
		}
		delete(raw, "pages")
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

func (e Element) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+8)
	for k, v := range e.Extra {
		out[k] = v
	}
	out["name"] = e.Name
	out["type"] = e.Type
	setIf(out, "kind", string(e.Kind), e.Kind != "")
	setIf(out, "title", encodeLocalized(e.Title, e.titleLocales), e.Title != "" || e.titleLocales != nil)
	setIf(out, "description", encodeLocalized(e.Description, e.descriptionLocales), e.Description != "" || e.descriptionLocales != nil)
	setIf(out, "isRequired", true, e.IsRequired)
	setIf(out, "inputType", e.InputType, e.InputType != "")
	setIf(out, "choices", e.Choices, e.Choices != nil)
	setIf(out, "items", e.Items, e.Items != nil)
	setNum(out, "rateMin", e.RateMin)
	setNum(out, "rateMax", e.RateMax)
	setNum(out, "rateStep", e.RateStep)
	setNum(out, "min", e.Min)
	setNum(out, "max", e.Max)
	return json.Marshal(out)
}

// UnmarshalJSON is lenient: a known key whose value has an unexpected type is
// kept verbatim in Extra instead of failing the whole document.
func (e *Element) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Element{}
	if v, ok := raw["title"]; ok {
		if text, locales, ok := decodeLocalized(v); ok {
			e.Title, e.titleLocales = text, locales
			delete(raw, "title")
		}
	}
	if v, ok := raw["description"]; ok {
		if text, locales, ok := decodeLocalized(v); ok {
			e.Description, e.descriptionLocales = text, locales
			delete(raw, "description")
		}
	}
	var kind string
	targets := map[string]any{
		"name":       &e.Name,
		"type":       &e.Type,
		"kind":       &kind,
		"isRequired": &e.IsRequired,
		"inputType":  &e.InputType,
		"choices":    &e.Choices,
		"items":      &e.Items,
		"rateMin":    &e.RateMin,
		"rateMax":    &e.RateMax,
		"rateStep":   &e.RateStep,
		"min":        &e.Min,
		"max":        &e.Max,
	}
	for key, dst := range targets {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			rv := reflect.ValueOf(dst).Elem()
			rv.Set(reflect.Zero(rv.Type()))
			continue
		}
		delete(raw, key)
	}
	e.Kind = Kind(kind)
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// decodeLocalized accepts a plain string or a localized object; the text of
// a localized object is its "default" entry.
func decodeLocalized(v json.RawMessage) (string, json.RawMessage, bool) {
	var text string
	if err := json.Unmarshal(v, &text); err == nil {
		return text, nil, true
	}
	var m map[string]any
	if err := json.Unmarshal(v, &m); err != nil || m == nil {
		return "", nil, false
	}
	return stringify(m), v, true
}

// encodeLocalized writes text back into the localized object it came from,
// keeping the other locales.
func encodeLocalized(text string, locales json.RawMessage) any {
	if locales == nil {
		return text
	}
	var m map[string]any
	if err := json.Unmarshal(locales, &m); err != nil || m == nil {
		return text
	}
	if cur, _ := m["default"].(string); cur == text {
		return locales
	}
	m["default"] = text
	return m
}

func setIf(m map[string]any, key string, v any, ok bool) {
	if ok {
		m[key] = v
	}
}

func setNum(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}
