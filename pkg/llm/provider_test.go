package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type echoProvider struct {
	got []Message
}

func (e *echoProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	e.got = history
	return history[len(history)-1].Content, nil
}

func TestGenerateWrapsPromptAsUserTurn(t *testing.T) {
	p := &echoProvider{}
	out, err := Generate(context.Background(), p, "hello")

	assert.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hello"}}, p.got)
}

func TestSplitSystem(t *testing.T) {
	system, turns := SplitSystem([]Message{
		{Role: RoleSystem, Content: "be nice"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleSystem, Content: "catalog"},
		{Role: RoleAssistant, Content: "hello"},
	})

	assert.Equal(t, "be nice\n\ncatalog", system)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}, turns)
}

func TestApplyOptions(t *testing.T) {
	o := ApplyOptions(Options{Temperature: 0.7, Model: "a"}, WithModel("b"), WithMaxTokens(10))
	assert.Equal(t, Options{Temperature: 0.7, Model: "b", MaxTokens: 10}, o)
}
