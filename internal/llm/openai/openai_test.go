package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-trader/internal/interfaces"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-openai", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  [1,2]  "}}]}`))
	}))
	defer srv.Close()

	out, err := New("sk-openai", srv.URL, time.Second).Complete(context.Background(), interfaces.Prompt{Model: "gpt-4o", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", out)
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := New("sk-openai", srv.URL, time.Second).Complete(context.Background(), interfaces.Prompt{Text: "x"})
	assert.Error(t, err)
}
