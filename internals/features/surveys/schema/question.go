package schema

type QuestionType string

const (
	ShortText    QuestionType = "short-text"
	LongText     QuestionType = "long-text"
	SingleSelect QuestionType = "single-select"
	MultiSelect  QuestionType = "multi-select"
	NPSScore     QuestionType = "nps-score"
)

// Question is the normalized read model of an Element. It is never stored.
type Question struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        QuestionType `json:"type"`
	Options     []Option     `json:"options"`
	Required    bool         `json:"required"`
	Min         *float64     `json:"min,omitempty"`
	Max         *float64     `json:"max,omitempty"`
}

type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

var externalTypes = map[string]QuestionType{
	"checkbox":    MultiSelect,
	"radiogroup":  SingleSelect,
	"dropdown":    SingleSelect,
	"rating":      NPSScore,
	"slider":      NPSScore,
	"nouislider":  NPSScore,
	"rangeslider": NPSScore,
	"text":        ShortText,
	"comment":     ShortText,
}

// TypeOf maps an external element type; anything unknown is short text.
func TypeOf(external string) QuestionType {
	if t, ok := externalTypes[external]; ok {
		return t
	}
	return ShortText
}

// Project converts one element. Options are only filled for select types.
func Project(e Element) Question {
	q := Question{
		ID:          e.Name,
		Title:       e.Title,
		Description: e.Description,
		Type:        TypeOf(e.Type),
		Options:     []Option{},
		Required:    e.IsRequired,
		Min:         e.Min,
		Max:         e.Max,
	}
	if q.Title == "" {
		q.Title = e.Name
	}
	switch q.Type {
	case SingleSelect, MultiSelect:
		q.Options = NormalizeChoices(e.Choices)
	case NPSScore:
		if q.Min == nil {
			q.Min = e.RateMin
		}
		if q.Max == nil {
			q.Max = e.RateMax
		}
	}
	return q
}

func (d Document) Sections() []Section {
	out := make([]Section, 0, len(d.Pages))
	for _, p := range d.Pages {
		s := Section{ID: p.Key(), Title: p.Title, Description: p.Description, Questions: make([]Question, 0, len(p.Elements))}
		for _, e := range p.Elements {
			s.Questions = append(s.Questions, Project(e))
		}
		out = append(out, s)
	}
	return out
}

// Questions flattens every page in document order.
func (d Document) Questions() []Question {
	var out []Question
	for _, p := range d.Pages {
		for _, e := range p.Elements {
			out = append(out, Project(e))
		}
	}
	return out
}
