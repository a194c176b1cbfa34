package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondReplaysFullPipeline(t *testing.T) {
	turn := NewService().Respond("anything at all")

	require.Len(t, turn.Steps, 4)
	assert.Equal(t, "route_query", turn.Steps[0].Node)
	assert.Equal(t, "web_search", turn.Steps[1].Node)
	assert.Equal(t, "generate", turn.Steps[2].Node)
	assert.Equal(t, "guardrail", turn.Steps[3].Node)
	assert.Equal(t, defaultAnswer, turn.Answer)
}

func TestRespondMatchesKeywords(t *testing.T) {
	svc := NewService()

	assert.Contains(t, svc.Respond("How do I APPLY?").Answer, "Admissions")
	assert.Contains(t, svc.Respond("tuition costs").Answer, "scholarship")
	assert.Contains(t, svc.Respond("list of degree programs").Answer, "faculties")
}
