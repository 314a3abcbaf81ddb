package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is a builder palette entry. Several kinds can share one external type.
type Kind string

const (
	KindShortText         Kind = "short_text"
	KindLongText          Kind = "long_text"
	KindMultiSelect       Kind = "multi_select"
	KindSingleChoice      Kind = "single_choice"
	KindNumber            Kind = "number"
	KindScale             Kind = "scale"
	KindMultipleShortText Kind = "multiple_short_text"
	KindNumberRange       Kind = "number_range"
	KindSingleDate        Kind = "single_date"
	KindDateRange         Kind = "date_range"
	KindRanking           Kind = "ranking"
)

var ErrUnknownKind = errors.New("unknown element kind")

var kindOrder = []Kind{
	KindShortText, KindLongText, KindMultiSelect, KindSingleChoice, KindNumber, KindScale,
	KindMultipleShortText, KindNumberRange, KindSingleDate, KindDateRange, KindRanking,
}

func Kinds() []Kind {
	return append([]Kind(nil), kindOrder...)
}

func (k Kind) Valid() bool {
	_, ok := templates[k]
	return ok
}

var templates = map[Kind]func() Element{
	KindShortText: func() Element {
		return Element{Type: "text"}
	},
	KindLongText: func() Element {
		return Element{Type: "comment"}
	},
	KindMultiSelect: func() Element {
		return Element{Type: "checkbox", Choices: placeholderChoices()}
	},
	KindSingleChoice: func() Element {
		return Element{Type: "radiogroup", Choices: placeholderChoices()}
	},
	KindNumber: func() Element {
		return Element{Type: "text", InputType: "number"}
	},
	KindScale: func() Element {
		return Element{Type: "rating", RateMin: num(1), RateMax: num(5), RateStep: num(1)}
	},
	KindMultipleShortText: func() Element {
		return Element{Type: "multipletext", Items: []Item{
			{Name: "text1", Title: "Text 1"},
			{Name: "text2", Title: "Text 2"},
		}}
	},
	KindNumberRange: func() Element {
		return Element{Type: "slider", Min: num(0), Max: num(100)}
	},
	KindSingleDate: func() Element {
		return Element{Type: "text", InputType: "date"}
	},
	KindDateRange: func() Element {
		return Element{Type: "multipletext", Items: []Item{
			{Name: "start", Title: "Start date", InputType: "date"},
			{Name: "end", Title: "End date", InputType: "date"},
		}}
	},
	KindRanking: func() Element {
		return Element{Type: "ranking", Choices: placeholderChoices()}
	},
}

// NewElement instantiates the template for kind under the given name.
func NewElement(kind Kind, name string) (Element, error) {
	build, ok := templates[kind]
	if !ok {
		return Element{}, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	e := build()
	e.Kind = kind
	e.Name = name
	return e, nil
}

func placeholderChoices() []any {
	return []any{
		map[string]any{"value": "option_1", "text": "Option 1"},
		map[string]any{"value": "option_2", "text": "Option 2"},
	}
}

func num(v float64) *float64 { return &v }

// nextName picks questionN for the first N past the page size that is free.
func nextName(p Page) string {
	for n := len(p.Elements) + 1; ; n++ {
		name := fmt.Sprintf("question%d", n)
		if p.elementIndex(name) < 0 {
			return name
		}
	}
}
