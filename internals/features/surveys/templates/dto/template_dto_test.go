package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateToModelCanonicalizesSchema(t *testing.T) {
	r := TemplateRequest{Title: " Intake ", SchemaJSON: json.RawMessage(`{"pages":[{"id":"p1","title":"A","description":"","elements":[]}],"theme":"dark"}`)}
	r.Normalize()

	m, err := r.ToModel(4)
	require.NoError(t, err)
	assert.Equal(t, "Intake", m.Title)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, int64(4), *m.CreatedBy)
	assert.Contains(t, string(m.SchemaJSON), `"theme":"dark"`)
	assert.Nil(t, m.Metadata)
}

func TestTemplateToModelEmptySchema(t *testing.T) {
	m, err := TemplateRequest{Title: "x"}.ToModel(0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages":[]}`, string(m.SchemaJSON))
	assert.Nil(t, m.CreatedBy)
}

func TestTemplatePatchKeepsSchemaWhenOmitted(t *testing.T) {
	p, err := TemplateRequest{Title: "x"}.ToPatch()
	require.NoError(t, err)
	assert.False(t, p.Has("schema_json"))
	assert.Equal(t, []string{"title", "description", "metadata"}, p.Columns())

	_, err = TemplateRequest{Title: "x", SchemaJSON: json.RawMessage(`{"pages":1}`)}.ToPatch()
	assert.Error(t, err)
}
