package schema

import (
	"fmt"

	"github.com/google/uuid"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NormalizeChoice turns a bare string or a {value, text} object into an
// Option. The label prefers text, then value, then the input itself. Every
// call mints a new id, so ids are not stable across calls.
func NormalizeChoice(v any) Option {
	return Option{ID: uuid.NewString(), Label: choiceLabel(v)}
}

func NormalizeChoices(vs []any) []Option {
	out := make([]Option, 0, len(vs))
	for _, v := range vs {
		out = append(out, NormalizeChoice(v))
	}
	return out
}

func choiceLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		if text, ok := t["text"]; ok && text != nil {
			return stringify(text)
		}
		if value, ok := t["value"]; ok && value != nil {
			return stringify(value)
		}
		return ""
	default:
		return stringify(t)
	}
}

// stringify also unwraps localized strings of the form {"default": "..."}.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["default"].(string); ok {
			return s
		}
		return ""
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

// ChoiceValue is what a respondent's answer holds for a choice: the value of
// a {value, text} object, or the choice itself.
func ChoiceValue(v any) string {
	if m, ok := v.(map[string]any); ok {
		if value, ok := m["value"]; ok && value != nil {
			return stringify(value)
		}
		if text, ok := m["text"]; ok && text != nil {
			return stringify(text)
		}
		return ""
	}
	if v == nil {
		return ""
	}
	return stringify(v)
}

// AnswerKey stringifies a stored answer the same way ChoiceValue does.
func AnswerKey(v any) string {
	if v == nil {
		return ""
	}
	return stringify(v)
}
