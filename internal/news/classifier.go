package news

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/llm"
	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

// ErrUnavailable means no classifier backend is configured. It wraps
// llm.ErrUnavailable.
var ErrUnavailable = fmt.Errorf("sentiment classifier: %w", llm.ErrUnavailable)

// LLMClassifier labels all articles with a single batched completion.
type LLMClassifier struct {
	llm       llm.Capability
	model     string
	maxTokens int
}

var _ interfaces.SentimentClassifier = (*LLMClassifier)(nil)

func NewLLMClassifier(capability llm.Capability, model string, maxTokens int) *LLMClassifier {
	return &LLMClassifier{llm: capability, model: model, maxTokens: maxTokens}
}

// Classify returns one result per article, in input order. Any malformed
// reply is an error; the caller owns the fallback. Result headlines are
// taken from the input articles, not from the reply's headline field.
func (c *LLMClassifier) Classify(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error) {
	provider, ok := c.llm.Handle()
	if !ok {
		return nil, ErrUnavailable
	}
	if len(articles) == 0 {
		return []types.ArticleSentiment{}, nil
	}

	reply, err := provider.Complete(ctx, interfaces.Prompt{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Text:      buildPrompt(articles),
	})
	if err != nil {
		return nil, err
	}
	return parseReply(reply, articles)
}

func buildPrompt(articles []types.Article) string {
	var b strings.Builder
	b.WriteString("You are a financial sentiment analyst. For each of the following news articles, ")
	b.WriteString("classify the sentiment as exactly one of: bullish, bearish, or neutral. ")
	b.WriteString("Also provide a numeric score from -1.0 (most bearish) to 1.0 (most bullish).\n\n")
	for i, a := range articles {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. Headline: %q\n   Summary: %q", i+1, a.Headline, a.Summary)
	}
	b.WriteString("\n\nRespond with ONLY a JSON array where each element has the keys: ")
	b.WriteString(`"headline" (string), "sentiment" (string), and "score" (float). `)
	b.WriteString("Do not include any text outside the JSON array.")
	return b.String()
}

func parseReply(reply string, articles []types.Article) ([]types.ArticleSentiment, error) {
	body := llm.StripCodeFence(reply)
	if !gjson.Valid(body) {
		return nil, errors.New("sentiment reply is not valid JSON")
	}
	doc := gjson.Parse(body)
	if !doc.IsArray() {
		return nil, errors.New("sentiment reply is not a JSON array")
	}
	items := doc.Array()
	if len(items) != len(articles) {
		return nil, fmt.Errorf("sentiment reply has %d items for %d articles", len(items), len(articles))
	}

	out := make([]types.ArticleSentiment, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("sentiment item %d is not an object", i)
		}
		score := 0.0
		if raw := item.Get("score"); raw.Exists() {
			f, ok := llm.Float(raw)
			if !ok {
				return nil, fmt.Errorf("sentiment item %d has non-numeric score %s", i, raw.Raw)
			}
			score = f
		}
		out[i] = types.ArticleSentiment{
			Headline:  articles[i].Headline,
			Sentiment: normalizeLabel(llm.Text(item.Get("sentiment"), types.Neutral)),
			Score:     ta.Clamp(score, -1, 1),
		}
	}
	return out, nil
}

func normalizeLabel(label string) string {
	switch l := strings.ToLower(strings.TrimSpace(label)); l {
	case types.Bullish, types.Bearish, types.Neutral:
		return l
	default:
		return types.Neutral
	}
}
