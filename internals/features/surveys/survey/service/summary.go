package service

import (
	"strconv"
	"strings"

	"surveyhub_backend/internals/features/surveys/schema"
)

const maxSamples = 5

type OptionCount struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type QuestionSummary struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Type     schema.QuestionType `json:"type"`
	Answered int                 `json:"answered"`
	Options  []OptionCount       `json:"options,omitempty"`
	Values   map[string]int      `json:"values,omitempty"`
	Average  *float64            `json:"average,omitempty"`
	Samples  []string            `json:"samples,omitempty"`
}

// Summarize tallies answers per question in document order. Select answers
// are counted against the element's choices (unknown values are appended),
// scores get a histogram and mean, text answers keep a few samples. answers
// should be newest first.
func Summarize(doc schema.Document, answers []map[string]any) []QuestionSummary {
	out := []QuestionSummary{}
	for _, p := range doc.Pages {
		for _, e := range p.Elements {
			q := schema.Project(e)
			s := QuestionSummary{ID: q.ID, Title: q.Title, Type: q.Type}
			switch q.Type {
			case schema.SingleSelect, schema.MultiSelect:
				s.Options = choiceTally(e, q, answers, &s.Answered)
			case schema.NPSScore:
				s.Values, s.Average = scoreTally(q.ID, answers, &s.Answered)
			default:
				s.Samples = textTally(q.ID, answers, &s.Answered)
			}
			out = append(out, s)
		}
	}
	return out
}

func choiceTally(e schema.Element, q schema.Question, answers []map[string]any, answered *int) []OptionCount {
	opts := make([]OptionCount, 0, len(e.Choices))
	index := make(map[string]int, len(e.Choices))
	for i, c := range e.Choices {
		v := schema.ChoiceValue(c)
		label := ""
		if i < len(q.Options) {
			label = q.Options[i].Label
		}
		index[v] = len(opts)
		opts = append(opts, OptionCount{Value: v, Label: label})
	}

	for _, a := range answers {
		raw, ok := a[q.ID]
		if !ok || empty(raw) {
			continue
		}
		*answered++
		values := []any{raw}
		if list, ok := raw.([]any); ok {
			values = list
		}
		for _, v := range values {
			key := schema.AnswerKey(v)
			i, known := index[key]
			if !known {
				i = len(opts)
				index[key] = i
				opts = append(opts, OptionCount{Value: key, Label: key})
			}
			opts[i].Count++
		}
	}
	return opts
}

func scoreTally(id string, answers []map[string]any, answered *int) (map[string]int, *float64) {
	values := map[string]int{}
	var sum float64
	var n int
	for _, a := range answers {
		raw, ok := a[id]
		if !ok || empty(raw) {
			continue
		}
		*answered++
		values[schema.AnswerKey(raw)]++
		if f, ok := number(raw); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return values, nil
	}
	avg := sum / float64(n)
	return values, &avg
}

func textTally(id string, answers []map[string]any, answered *int) []string {
	var samples []string
	for _, a := range answers {
		raw, ok := a[id]
		if !ok || empty(raw) {
			continue
		}
		*answered++
		if len(samples) < maxSamples {
			samples = append(samples, schema.AnswerKey(raw))
		}
	}
	return samples
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// empty is true for null, blank strings and empty lists or objects.
func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// MissingRequired lists required questions without an answer.
func MissingRequired(doc schema.Document, answers map[string]any) []string {
	var missing []string
	for _, q := range doc.Questions() {
		if !q.Required {
			continue
		}
		if v, ok := answers[q.ID]; !ok || empty(v) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}
