package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutKeyLogsToConsole(t *testing.T) {
	s := New("", "SurveyHub", "noreply@example.com", "")
	_, ok := s.(Console)
	require.True(t, ok)
	assert.NoError(t, s.Send(context.Background(), Message{Subject: "x"}))
}

func TestSendGridPayloadHidesRecipients(t *testing.T) {
	s := New("SG.key", "SurveyHub", "noreply@example.com", "").(*SendGrid)

	batches := s.Build(Message{
		To:      []mail.Address{{Name: "A", Address: "a@x.io"}, {Address: "b@x.io"}},
		Subject: "New survey",
		Text:    "hello",
	})

	require.Len(t, batches, 1)
	m := batches[0]
	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Equal(t, "[SurveyHub] New survey", p.Subject)
	require.Len(t, p.To, 1)
	assert.Equal(t, "noreply@example.com", p.To[0].Address)
	require.Len(t, p.BCC, 2)
	assert.Equal(t, "b@x.io", p.BCC[1].Address)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
}

func TestSendGridBatchesLargeAudiences(t *testing.T) {
	s := New("SG.key", "SurveyHub", "noreply@example.com", "").(*SendGrid)

	to := make([]mail.Address, 2500)
	for i := range to {
		to[i] = mail.Address{Address: fmt.Sprintf("p%d@x.io", i)}
	}
	batches := s.Build(Message{To: to, Subject: "New survey", Text: "hello"})
	require.Len(t, batches, 3)

	seen := 0
	for _, m := range batches {
		require.Len(t, m.Personalizations, 1)
		p := m.Personalizations[0]
		assert.LessOrEqual(t, len(p.To)+len(p.CC)+len(p.BCC), MaxRecipients)
		seen += len(p.BCC)
	}
	assert.Equal(t, 2500, seen)
	assert.Equal(t, "p999@x.io", batches[1].Personalizations[0].BCC[0].Address)
	assert.Empty(t, s.Build(Message{Subject: "nobody"}))
}
