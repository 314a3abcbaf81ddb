package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/helpers/patch"
)

func docWithPage(t *testing.T) (Document, string) {
	t.Helper()
	d := AddPage(Document{}, "")
	require.Len(t, d.Pages, 1)
	return d, d.Pages[0].ID
}

func TestAddPageDefaults(t *testing.T) {
	d, id := docWithPage(t)
	assert.NotEmpty(t, id)
	assert.Equal(t, "Section 1", d.Pages[0].Title)
	assert.Empty(t, d.Pages[0].Description)
	assert.Empty(t, d.Pages[0].Elements)

	d2 := AddPage(d, "")
	assert.Equal(t, "Section 2", d2.Pages[1].Title)
	assert.NotEqual(t, d2.Pages[0].ID, d2.Pages[1].ID)
	assert.Len(t, d.Pages, 1, "input document must not change")

	d3 := AddPage(d2, "Household")
	assert.Equal(t, "Household", d3.Pages[2].Title)
}

func TestUpdatePage(t *testing.T) {
	d, id := docWithPage(t)

	out := UpdatePage(d, id, PagePatch{Description: patch.Value("About you")})
	assert.Equal(t, "About you", out.Pages[0].Description)
	assert.Equal(t, "Section 1", out.Pages[0].Title)
	assert.Empty(t, d.Pages[0].Description)

	same := UpdatePage(d, "missing", PagePatch{Title: patch.Value("x")})
	assert.Equal(t, d, same)
}

func TestAddElementByKindScale(t *testing.T) {
	d, id := docWithPage(t)

	out, err := AddElementByKind(d, id, KindScale)
	require.NoError(t, err)
	require.Len(t, out.Pages[0].Elements, 1)
	assert.Empty(t, d.Pages[0].Elements)

	e := out.Pages[0].Elements[0]
	assert.Equal(t, KindScale, e.Kind)
	assert.Equal(t, "rating", e.Type)
	require.NotNil(t, e.RateMin)
	assert.Equal(t, 1.0, *e.RateMin)
	assert.Equal(t, 5.0, *e.RateMax)
	assert.Equal(t, 1.0, *e.RateStep)

	q := Project(e)
	assert.Equal(t, NPSScore, q.Type)
	assert.Empty(t, q.Options)
	require.NotNil(t, q.Min)
	assert.Equal(t, 1.0, *q.Min)
	assert.Equal(t, 5.0, *q.Max)
}

func TestAddElementByKindPalette(t *testing.T) {
	d, id := docWithPage(t)
	var err error
	for _, k := range Kinds() {
		d, err = AddElementByKind(d, id, k)
		require.NoError(t, err, k)
	}
	els := d.Pages[0].Elements
	require.Len(t, els, 11)

	names := map[string]bool{}
	for _, e := range els {
		assert.False(t, names[e.Name], "duplicate name %s", e.Name)
		names[e.Name] = true
	}

	byKind := map[Kind]Element{}
	for _, e := range els {
		byKind[e.Kind] = e
	}
	assert.Len(t, byKind[KindMultiSelect].Choices, 2)
	assert.Len(t, byKind[KindSingleChoice].Choices, 2)
	assert.Len(t, byKind[KindMultipleShortText].Items, 2)
	assert.Len(t, byKind[KindDateRange].Items, 2)
	assert.Equal(t, "date", byKind[KindDateRange].Items[0].InputType)
	assert.Equal(t, "number", byKind[KindNumber].InputType)
	assert.Equal(t, "date", byKind[KindSingleDate].InputType)
}

func TestAddElementUnknownKind(t *testing.T) {
	d, id := docWithPage(t)
	_, err := AddElementByKind(d, id, Kind("matrix"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestAddElementSkipsTakenNames(t *testing.T) {
	d, id := docWithPage(t)
	d, _ = AddElementByKind(d, id, KindShortText)
	d, _ = AddElementByKind(d, id, KindShortText)
	d = RemoveElement(d, id, "question1")
	d, _ = AddElementByKind(d, id, KindShortText)

	var names []string
	for _, e := range d.Pages[0].Elements {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"question2", "question3"}, names)
}

func TestChangeElementKindPreservesIdentity(t *testing.T) {
	d, id := docWithPage(t)
	d.Pages[0].Elements = []Element{{Name: "q1", Title: "Age?", IsRequired: true, Kind: KindShortText, Type: "text", InputType: "number"}}

	out, err := ChangeElementKind(d, id, "q1", KindScale)
	require.NoError(t, err)

	e := out.Pages[0].Elements[0]
	assert.Equal(t, "q1", e.Name)
	assert.Equal(t, "Age?", e.Title)
	assert.True(t, e.IsRequired)
	assert.Equal(t, KindScale, e.Kind)
	assert.Empty(t, e.InputType)
	assert.Equal(t, 1.0, *e.RateMin)
	assert.Equal(t, 5.0, *e.RateMax)

	assert.Equal(t, KindShortText, d.Pages[0].Elements[0].Kind)
}

func TestLocalizedTitleSurvivesKindChange(t *testing.T) {
	raw := `{"pages":[{"id":"p1","title":"One","elements":[
		{"name":"q1","type":"text","title":{"default":"Age?","de":"Alter?"},"description":{"default":"In years"},"isRequired":true}
	]}]}`
	d, err := Parse([]byte(raw))
	require.NoError(t, err)

	e, _ := d.Element("p1", "q1")
	q := Project(e)
	assert.Equal(t, "Age?", q.Title)
	assert.Equal(t, "In years", q.Description)

	out, err := ChangeElementKind(d, "p1", "q1", KindScale)
	require.NoError(t, err)

	e, _ = out.Element("p1", "q1")
	assert.Equal(t, "Age?", e.Title)
	assert.Equal(t, "In years", e.Description)
	assert.True(t, e.IsRequired)
	assert.Equal(t, "rating", e.Type)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, map[string]any{"default": "Age?", "de": "Alter?"}, back["title"])
	assert.Equal(t, map[string]any{"default": "In years"}, back["description"])
}

func TestRetitleKeepsOtherLocales(t *testing.T) {
	raw := `{"pages":[{"id":"p1","elements":[{"name":"q1","type":"text","title":{"default":"Age?","de":"Alter?"}}]}]}`
	d, err := Parse([]byte(raw))
	require.NoError(t, err)

	d = UpdateElement(d, "p1", "q1", ElementPatch{Title: patch.Value("Your age")})
	e, _ := d.Element("p1", "q1")
	assert.Equal(t, "Your age", e.Title)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, map[string]any{"default": "Your age", "de": "Alter?"}, back["title"])
}

func TestUpdateElementMergesPatch(t *testing.T) {
	d, id := docWithPage(t)
	d, _ = AddElementByKind(d, id, KindSingleChoice)
	name := d.Pages[0].Elements[0].Name

	var p ElementPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Favourite colour","isRequired":true,"choices":["Red","Blue","Green"],"extra":{"colCount":3}}`), &p))

	out := UpdateElement(d, id, name, p)
	e := out.Pages[0].Elements[0]
	assert.Equal(t, "Favourite colour", e.Title)
	assert.True(t, e.IsRequired)
	assert.Len(t, e.Choices, 3)
	assert.JSONEq(t, `3`, string(e.Extra["colCount"]))

	orig := d.Pages[0].Elements[0]
	assert.Empty(t, orig.Title)
	assert.Len(t, orig.Choices, 2)
	assert.Nil(t, orig.Extra)

	assert.Equal(t, d, UpdateElement(d, id, "nope", p))
	assert.Equal(t, d, UpdateElement(d, "nope", name, p))
}

func TestRemovePageAndElement(t *testing.T) {
	d, id := docWithPage(t)
	d = AddPage(d, "Second")
	d, _ = AddElementByKind(d, id, KindLongText)

	out := RemoveElement(d, id, "question1")
	assert.Empty(t, out.Pages[0].Elements)
	assert.Len(t, d.Pages[0].Elements, 1)

	out = RemovePage(d, id)
	require.Len(t, out.Pages, 1)
	assert.Equal(t, "Second", out.Pages[0].Title)
	assert.Len(t, d.Pages, 2)

	assert.Equal(t, d, RemovePage(d, "missing"))
}

func TestProjectionTable(t *testing.T) {
	cases := map[string]QuestionType{
		"checkbox":   MultiSelect,
		"radiogroup": SingleSelect,
		"dropdown":   SingleSelect,
		"rating":     NPSScore,
		"slider":     NPSScore,
		"text":       ShortText,
		"comment":    ShortText,
		"matrix":     ShortText,
		"":           ShortText,
	}
	for ext, want := range cases {
		assert.Equal(t, want, TypeOf(ext), ext)
	}
}

func TestProjectOptionsOnlyForSelects(t *testing.T) {
	choices := []any{"Yes", map[string]any{"value": "n", "text": "No"}}

	q := Project(Element{Name: "a", Type: "radiogroup", Choices: choices})
	require.Len(t, q.Options, 2)
	assert.Equal(t, "Yes", q.Options[0].Label)
	assert.Equal(t, "No", q.Options[1].Label)

	q = Project(Element{Name: "b", Type: "text", Choices: choices})
	assert.Empty(t, q.Options)
	assert.Equal(t, "b", q.Title)
}

func TestNormalizeChoice(t *testing.T) {
	assert.Equal(t, "Red", NormalizeChoice("Red").Label)
	assert.Equal(t, "Shown", NormalizeChoice(map[string]any{"value": "v", "text": "Shown"}).Label)
	assert.Equal(t, "v", NormalizeChoice(map[string]any{"value": "v"}).Label)
	assert.Equal(t, "3", NormalizeChoice(map[string]any{"value": 3.0}).Label)
	assert.Equal(t, "Hi", NormalizeChoice(map[string]any{"text": map[string]any{"default": "Hi"}}).Label)
	assert.Equal(t, "", NormalizeChoice(map[string]any{}).Label)
	assert.Equal(t, "", NormalizeChoice(nil).Label)
	assert.Equal(t, "42", NormalizeChoice(42.0).Label)
	assert.Equal(t, "true", NormalizeChoice(true).Label)

	a, b := NormalizeChoice("x"), NormalizeChoice("x")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseKeepsUnknownKeys(t *testing.T) {
	raw := `{"showProgressBar":"top","pages":[{"id":"p1","title":"One","description":"","elements":[
		{"name":"q1","type":"rating","title":{"default":"Rate"},"rateMax":10,"min":"low","visibleIf":"{a} = 1"}
	]}]}`

	d, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.True(t, d.HasQuestions())

	e, ok := d.Element("p1", "q1")
	require.True(t, ok)
	assert.Equal(t, "Rate", e.Title)
	assert.Nil(t, e.Min)
	assert.Equal(t, 10.0, *e.RateMax)
	assert.Contains(t, e.Extra, "visibleIf")
	assert.NotContains(t, e.Extra, "title")

	q := Project(e)
	assert.Equal(t, NPSScore, q.Type)
	assert.Nil(t, q.Min)
	assert.Equal(t, 10.0, *q.Max)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"showProgressBar":"top"`)
	assert.Contains(t, string(out), `"visibleIf":"{a} = 1"`)
	assert.Contains(t, string(out), `"title":{"default":"Rate"}`)
	assert.Contains(t, string(out), `"min":"low"`)
}

func TestParseEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		d, err := Parse([]byte(raw))
		require.NoError(t, err)
		assert.False(t, d.HasQuestions())
	}
	out, err := json.Marshal(Document{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages":[]}`, string(out))
}

func TestSections(t *testing.T) {
	d, id := docWithPage(t)
	d, _ = AddElementByKind(d, id, KindMultiSelect)

	s := d.Sections()
	require.Len(t, s, 1)
	assert.Equal(t, id, s[0].ID)
	require.Len(t, s[0].Questions, 1)
	assert.Equal(t, MultiSelect, s[0].Questions[0].Type)
	assert.Len(t, s[0].Questions[0].Options, 2)
	assert.Len(t, d.Questions(), 1)
}

func TestChoiceValueMatchesStoredAnswers(t *testing.T) {
	assert.Equal(t, "v", ChoiceValue(map[string]any{"value": "v", "text": "Shown"}))
	assert.Equal(t, "Shown", ChoiceValue(map[string]any{"text": "Shown"}))
	assert.Equal(t, "2", ChoiceValue(map[string]any{"value": 2.0}))
	assert.Equal(t, "Red", ChoiceValue("Red"))
	assert.Equal(t, "", ChoiceValue(nil))

	assert.Equal(t, ChoiceValue(map[string]any{"value": 2.0}), AnswerKey(2.0))
}
