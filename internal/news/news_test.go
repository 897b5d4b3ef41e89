package news

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/llm"
	"ai-trader/internal/types"
)

type stubProvider struct {
	reply  string
	err    error
	prompt interfaces.Prompt
}

func (p *stubProvider) Complete(_ context.Context, prompt interfaces.Prompt) (string, error) {
	p.prompt = prompt
	return p.reply, p.err
}

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error) {
	args := m.Called(ctx, articles)
	res, _ := args.Get(0).([]types.ArticleSentiment)
	return res, args.Error(1)
}

func articles(headlines ...string) []types.Article {
	out := make([]types.Article, len(headlines))
	for i, h := range headlines {
		out[i] = types.Article{Headline: h, Summary: "summary of " + h}
	}
	return out
}

func TestLLMClassifierParsesFencedReply(t *testing.T) {
	p := &stubProvider{reply: "```json\n" + `[
		{"headline":"A","sentiment":"BULLISH","score":0.9},
		{"headline":"B","sentiment":"euphoric","score":"-3"},
		{"headline":"C"}
	]` + "\n```"}
	c := NewLLMClassifier(llm.Configured(p), "claude-haiku-4-5-20251001", 1024)

	got, err := c.Classify(context.Background(), articles("Profit up", "Plant fire", "AGM date"))
	require.NoError(t, err)

	assert.Equal(t, []types.ArticleSentiment{
		{Headline: "Profit up", Sentiment: types.Bullish, Score: 0.9},
		{Headline: "Plant fire", Sentiment: types.Neutral, Score: -1},
		{Headline: "AGM date", Sentiment: types.Neutral, Score: 0},
	}, got)

	assert.Equal(t, "claude-haiku-4-5-20251001", p.prompt.Model)
	assert.Equal(t, 1024, p.prompt.MaxTokens)
	assert.Contains(t, p.prompt.Text, `1. Headline: "Profit up"`)
	assert.Contains(t, p.prompt.Text, `3. Headline: "AGM date"`)
}

func TestLLMClassifierKeepsInputHeadlines(t *testing.T) {
	p := &stubProvider{reply: `[{"headline":"Reworded by model","sentiment":"bearish","score":-0.4}]`}

	got, err := NewLLMClassifier(llm.Configured(p), "m", 10).Classify(context.Background(), articles("Margins shrink"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Margins shrink", got[0].Headline)
	assert.Equal(t, types.Bearish, got[0].Sentiment)
}

func TestLLMClassifierRejectsMalformedReplies(t *testing.T) {
	tests := map[string]string{
		"not json":       "I think it is bullish",
		"object":         `{"sentiment":"bullish"}`,
		"count mismatch": `[{"sentiment":"bullish","score":0.5}]`,
		"bad score":      `[{"sentiment":"bullish","score":"very"},{"sentiment":"neutral","score":0}]`,
		"item not obj":   `[1, 2]`,
	}
	for name, reply := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewLLMClassifier(llm.Configured(&stubProvider{reply: reply}), "m", 10)
			_, err := c.Classify(context.Background(), articles("a", "b"))
			assert.Error(t, err)
		})
	}
}

func TestLLMClassifierUnavailable(t *testing.T) {
	_, err := NewLLMClassifier(llm.Unavailable(), "m", 10).Classify(context.Background(), articles("a"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestAggregateMeanAndLabel(t *testing.T) {
	in := articles("a", "b", "c")
	cls := new(mockClassifier)
	cls.On("Classify", mock.Anything, in).Return([]types.ArticleSentiment{
		{Headline: "a", Sentiment: types.Bullish, Score: 0.8},
		{Headline: "b", Sentiment: types.Bullish, Score: 0.6},
		{Headline: "c", Sentiment: types.Bearish, Score: -0.1},
	}, nil)

	got := NewAggregator(cls, nil).Aggregate(context.Background(), in)

	assert.Equal(t, types.AggregateSentiment{Label: types.Bullish, Score: 0.4333}, got)
	cls.AssertExpectations(t)
}

func TestAggregateEmptySkipsClassifier(t *testing.T) {
	cls := new(mockClassifier)

	got := NewAggregator(cls, nil).Aggregate(context.Background(), nil)

	assert.Equal(t, types.AggregateSentiment{Label: types.Neutral, Score: 0}, got)
	cls.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestClassifyFallsBackToNeutral(t *testing.T) {
	in := articles("x", "y")
	want := []types.ArticleSentiment{
		{Headline: "x", Sentiment: types.Neutral, Score: 0},
		{Headline: "y", Sentiment: types.Neutral, Score: 0},
	}

	tests := map[string]func(*mockClassifier){
		"unavailable": func(m *mockClassifier) {
			m.On("Classify", mock.Anything, in).Return(nil, ErrUnavailable)
		},
		"provider error": func(m *mockClassifier) {
			m.On("Classify", mock.Anything, in).Return(nil, errors.New("503"))
		},
		"short result": func(m *mockClassifier) {
			m.On("Classify", mock.Anything, in).Return([]types.ArticleSentiment{
				{Headline: "x", Sentiment: types.Bullish, Score: 1},
			}, nil)
		},
	}
	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			cls := new(mockClassifier)
			setup(cls)
			assert.Equal(t, want, NewAggregator(cls, nil).Classify(context.Background(), in))
		})
	}

	assert.Equal(t, want, NewAggregator(nil, nil).Classify(context.Background(), in))
}

func TestClassifyCoercesOutOfContractValues(t *testing.T) {
	in := articles("x")
	cls := new(mockClassifier)
	cls.On("Classify", mock.Anything, in).Return([]types.ArticleSentiment{
		{Headline: "x", Sentiment: "Bearish ", Score: -7},
	}, nil)

	got := NewAggregator(cls, nil).Classify(context.Background(), in)
	assert.Equal(t, []types.ArticleSentiment{{Headline: "x", Sentiment: types.Bearish, Score: -1}}, got)
}

func TestSummarizeThresholds(t *testing.T) {
	score := func(s ...float64) []types.ArticleSentiment {
		out := make([]types.ArticleSentiment, len(s))
		for i, v := range s {
			out[i] = types.ArticleSentiment{Score: v}
		}
		return out
	}

	assert.Equal(t, types.Neutral, Summarize(score(0.15)).Label)
	assert.Equal(t, types.Bullish, Summarize(score(0.1501)).Label)
	assert.Equal(t, types.Bearish, Summarize(score(-0.2, -0.2)).Label)
	assert.Equal(t, -0.2, Summarize(score(-0.2, -0.2)).Score)
	assert.Equal(t, types.AggregateSentiment{Label: types.Neutral}, Summarize(nil))
}
