package seeds

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/constants"
	templates "surveyhub_backend/internals/seeds/templates"
	users "surveyhub_backend/internals/seeds/users"
)

func TestEmbeddedTemplatesBuild(t *testing.T) {
	raw, err := data.ReadFile("data/templates.json")
	require.NoError(t, err)

	var seeds []templates.TemplateSeed
	require.NoError(t, sonic.Unmarshal(raw, &seeds))
	require.NotEmpty(t, seeds)

	for _, s := range seeds {
		doc, err := s.Build()
		require.NoError(t, err, s.Title)
		assert.True(t, doc.HasQuestions(), s.Title)
		assert.Len(t, doc.Pages, len(s.Pages))

		for i, p := range s.Pages {
			require.Len(t, doc.Pages[i].Elements, len(p.Questions))
			for j, q := range p.Questions {
				el := doc.Pages[i].Elements[j]
				assert.Equal(t, q.Title, el.Title)
				assert.Equal(t, q.Required, el.IsRequired)
				assert.Equal(t, q.Kind, el.Kind)
			}
		}
	}
}

func TestEmbeddedUsersHaveValidRoles(t *testing.T) {
	raw, err := data.ReadFile("data/users.json")
	require.NoError(t, err)

	var seeds []users.UserSeed
	require.NoError(t, sonic.Unmarshal(raw, &seeds))
	for _, s := range seeds {
		assert.True(t, constants.ValidRole(s.Role), s.Email)
	}
}
