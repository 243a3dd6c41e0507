package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
)

func TestTableResolverMatchesTopicKeyword(t *testing.T) {
	table := content.AssistantResponses()
	resolver := NewTableResolver(table)

	reply, err := resolver.Respond(context.Background(), "Tell me about transcription please")
	require.NoError(t, err)

	// Selection among candidates is randomized, so assert membership.
	assert.Contains(t, table.Topics[0].Responses, reply)
}

func TestTableResolverScansTopicsInDeclaredOrder(t *testing.T) {
	table := content.ResponseTable{
		Topics: []content.ResponseTopic{
			{Keyword: "rna", Responses: []string{"rna answer"}},
			{Keyword: "mrna", Responses: []string{"mrna answer"}},
		},
		GeneralAnswer: "general",
		Fallback:      "fallback",
	}
	resolver := NewTableResolver(table, WithPick(func(int) int { return 0 }))

	// "mrna" contains "rna", and rna is declared first, so it wins.
	reply, err := resolver.Respond(context.Background(), "what is mRNA?")
	require.NoError(t, err)
	assert.Equal(t, "rna answer", reply)
}

func TestTableResolverPickIsInjectable(t *testing.T) {
	table := content.AssistantResponses()

	for want := 0; want < 2; want++ {
		idx := want
		resolver := NewTableResolver(table, WithPick(func(int) int { return idx }))
		reply, err := resolver.Respond(context.Background(), "explain translation")
		require.NoError(t, err)
		assert.Equal(t, table.Topics[1].Responses[idx], reply)
	}
}

func TestTableResolverGeneralTriggers(t *testing.T) {
	table := content.AssistantResponses()
	resolver := NewTableResolver(table)

	for _, input := range []string{
		"What is Protein Synthesis?",
		"explain the CENTRAL DOGMA to me",
	} {
		reply, err := resolver.Respond(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, table.GeneralAnswer, reply, "input %q", input)
	}
}

func TestTableResolverFallback(t *testing.T) {
	table := content.AssistantResponses()
	resolver := NewTableResolver(table)

	reply, err := resolver.Respond(context.Background(), "asdkjfh")
	require.NoError(t, err)
	assert.Equal(t, table.Fallback, reply)
}
