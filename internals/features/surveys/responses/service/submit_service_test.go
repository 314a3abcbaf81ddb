package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/helpers/testdb"
)

func TestAccepting(t *testing.T) {
	assert.True(t, Accepting(constants.SurveyOpen))
	assert.True(t, Accepting(constants.SurveyReady))
	assert.False(t, Accepting(constants.SurveyDraft))
	assert.False(t, Accepting(constants.SurveyClosed))
}

func TestMissingAnswersMessage(t *testing.T) {
	err := &MissingAnswersError{Questions: []string{"q1", "q3"}}
	assert.Equal(t, "required questions not answered: q1, q3", err.Error())
}

func TestSubmitRefusesSurveyNotAccepting(t *testing.T) {
	// a dry run loads a zero survey, whose empty status takes nothing
	_, promoted, err := Submit(t.Context(), testdb.DryRun(t), Submission{FormID: 3, Answers: map[string]any{"q1": "x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAccepting)
	assert.False(t, promoted)
}
