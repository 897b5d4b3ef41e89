package di

import (
	"errors"
	"strings"
	"time"

	"github.com/google/wire"

	"ai-trader/internal/fusion"
	"ai-trader/internal/fusion/fusionobs"
	"ai-trader/internal/interfaces"
	"ai-trader/internal/llm"
	"ai-trader/internal/llm/claude"
	"ai-trader/internal/llm/llmobs"
	"ai-trader/internal/llm/openai"
	"ai-trader/internal/marketdata"
	"ai-trader/internal/marketdata/marketobs"
	"ai-trader/internal/metrics"
	"ai-trader/internal/news"
	"ai-trader/internal/reasoning"
	"ai-trader/internal/store"
	signalhttp "ai-trader/internal/transport/http"
)

// App is the fully wired application.
type App struct {
	Config  *store.Config
	Metrics *metrics.Recorder
	Service interfaces.SignalService
	Server  *signalhttp.Server
}

// ProviderSet holds every constructor InitializeApp needs.
var ProviderSet = wire.NewSet(
	ProvideMetrics,
	ProvideLLM,
	ProvideMarketData,
	ProvideSentiment,
	ProvideReasoner,
	ProvideHeadlineSource,
	ProvideSignalService,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideLLM selects the completion backend. A missing key leaves the
// capability unavailable and every LLM stage on its deterministic default.
func ProvideLLM(cfg *store.Config, rec *metrics.Recorder) llm.Capability {
	key := cfg.APIKey()
	if key == "" {
		return llm.Unavailable()
	}
	switch cfg.LLM.Provider {
	case store.ProviderClaude:
		return llm.Configured(llmobs.Wrap("claude", claude.New(key, cfg.LLM.Endpoint, cfg.LLMTimeout()), rec))
	case store.ProviderOpenAI:
		return llm.Configured(llmobs.Wrap("openai", openai.New(key, cfg.LLM.Endpoint, cfg.LLMTimeout()), rec))
	default:
		return llm.Unavailable()
	}
}

// ProvideMarketData builds the candle source used when a request carries none.
func ProvideMarketData(cfg *store.Config) (interfaces.MarketData, error) {
	var src interfaces.MarketData
	switch cfg.MarketData.Source {
	case store.SourceKite:
		if cfg.Credentials.KiteAPIKey == "" || cfg.Credentials.KiteAccessToken == "" {
			return nil, errors.New("KITE market data requires KITE_API_KEY and KITE_ACCESS_TOKEN")
		}
		src = marketdata.NewKite(cfg.Credentials.KiteAPIKey, cfg.Credentials.KiteAccessToken,
			cfg.MarketData.Exchange, cfg.MarketData.LookbackDays)
	case store.SourceStatic:
		src = marketdata.NewStatic(cfg.MarketData.LookbackDays, time.Now().UTC().Truncate(24*time.Hour).Unix())
	case store.SourceNone:
		src = marketdata.None{}
	default:
		src = marketdata.NewYahoo(marketdata.YahooOptions{
			Range:    cfg.MarketData.Range,
			Interval: cfg.MarketData.Interval,
			Suffix:   cfg.MarketData.SymbolSuffix,
			Timeout:  cfg.MarketDataTimeout(),
		})
	}
	return marketobs.Wrap(strings.ToLower(cfg.MarketData.Source), src), nil
}

func ProvideSentiment(cfg *store.Config, capability llm.Capability, rec *metrics.Recorder) *news.Aggregator {
	classifier := news.NewLLMClassifier(capability, cfg.SentimentModel(), cfg.LLM.SentimentMaxTokens)
	return news.NewAggregator(classifier, rec)
}

func ProvideReasoner(cfg *store.Config, capability llm.Capability, rec *metrics.Recorder) interfaces.Reasoner {
	return reasoning.NewClient(capability, cfg.ReasoningModel(), cfg.LLM.ReasoningMaxTokens, rec)
}

// ProvideHeadlineSource returns nil unless news scraping is enabled.
func ProvideHeadlineSource(cfg *store.Config) interfaces.HeadlineSource {
	if !cfg.News.Enabled {
		return nil
	}
	return news.NewScraper(cfg.NewsTimeout())
}

func ProvideSignalService(
	cfg *store.Config,
	market interfaces.MarketData,
	sentiment *news.Aggregator,
	reasoner interfaces.Reasoner,
	headlines interfaces.HeadlineSource,
	rec *metrics.Recorder,
) interfaces.SignalService {
	opts := []fusion.Option{fusion.WithMetrics(rec)}
	if headlines != nil {
		opts = append(opts, fusion.WithHeadlines(headlines, cfg.News.MaxArticles))
	}
	return fusionobs.Wrap(fusion.NewService(market, sentiment, reasoner, opts...), rec)
}

func ProvideServer(cfg *store.Config, service interfaces.SignalService, rec *metrics.Recorder) (*signalhttp.Server, error) {
	return signalhttp.NewServer(signalhttp.ServerConfig{
		Addr:    cfg.Server.Addr,
		Mode:    cfg.Server.Mode,
		Service: service,
		Metrics: rec,
	})
}
