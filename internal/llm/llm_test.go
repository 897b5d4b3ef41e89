package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-trader/internal/interfaces"
)

type echoProvider struct{}

func (echoProvider) Complete(_ context.Context, p interfaces.Prompt) (string, error) {
	return p.Text, nil
}

func TestCapability(t *testing.T) {
	_, ok := Unavailable().Handle()
	assert.False(t, ok)
	_, ok = Configured(nil).Handle()
	assert.False(t, ok)

	p, ok := Configured(echoProvider{}).Handle()
	assert.True(t, ok)
	out, err := p.Complete(context.Background(), interfaces.Prompt{Text: "ping"})
	assert.NoError(t, err)
	assert.Equal(t, "ping", out)
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]struct {
		in, want string
	}{
		"plain":           {`{"a":1}`, `{"a":1}`},
		"json fence":      {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":      {"```\n[1,2]\n```", `[1,2]`},
		"padded":          {"  \n```json\n{\"a\":1}\n```  \n", `{"a":1}`},
		"unterminated":    {"```json\n{\"a\":1}", `{"a":1}`},
		"single line":     {"```{\"a\":1}```", `{"a":1}`},
		"inner backticks": {"```\n{\"a\":\"`x`\"}\n```", "{\"a\":\"`x`\"}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}
