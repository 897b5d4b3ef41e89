package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LLM providers
const (
	ProviderClaude = "CLAUDE"
	ProviderOpenAI = "OPENAI"
	ProviderNone   = "NONE"
)

// Market data sources
const (
	SourceYahoo  = "YAHOO"
	SourceKite   = "KITE"
	SourceStatic = "STATIC"
	SourceNone   = "NONE"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	MarketData MarketDataConfig `yaml:"market_data"`
	News       NewsConfig       `yaml:"news"`

	// Credentials come from the environment only and are never written back.
	Credentials Credentials `yaml:"-"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" default:":8000" validate:"required"`
	Mode string `yaml:"mode" default:"release" validate:"oneof=debug release test"`
}

type LLMConfig struct {
	Provider           string `yaml:"provider" default:"CLAUDE" validate:"oneof=CLAUDE OPENAI NONE"`
	ReasoningModel     string `yaml:"reasoning_model"`
	ReasoningMaxTokens int    `yaml:"reasoning_max_tokens" default:"2048" validate:"gt=0"`
	SentimentModel     string `yaml:"sentiment_model"`
	SentimentMaxTokens int    `yaml:"sentiment_max_tokens" default:"1024" validate:"gt=0"`
	// Endpoint overrides the provider's public API URL (proxies, gateways).
	Endpoint       string `yaml:"endpoint" validate:"omitempty,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"60" validate:"gt=0"`
}

type MarketDataConfig struct {
	Source       string `yaml:"source" default:"YAHOO" validate:"oneof=YAHOO KITE STATIC NONE"`
	Range        string `yaml:"range" default:"3mo" validate:"required"`
	Interval     string `yaml:"interval" default:"1d" validate:"required"`
	LookbackDays int    `yaml:"lookback_days" default:"90" validate:"gt=0"`
	Exchange     string `yaml:"exchange" default:"NSE"`
	// SymbolSuffix is appended for Yahoo lookups (".NS" for NSE listings).
	SymbolSuffix   string `yaml:"symbol_suffix"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"15" validate:"gt=0"`
}

type NewsConfig struct {
	// Enabled attaches scraped headlines to batch generation.
	Enabled        bool `yaml:"enabled"`
	MaxArticles    int  `yaml:"max_articles" default:"10" validate:"gt=0,lte=50"`
	TimeoutSeconds int  `yaml:"timeout_seconds" default:"10" validate:"gt=0"`
}

type Credentials struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	KiteAPIKey      string
	KiteAccessToken string
}

var validate = validator.New()

// Default returns a config with every default applied and credentials read from the environment.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	c.loadCredentials()
	return &c, nil
}

// LoadConfig reads a YAML config. An empty path means defaults only.
func LoadConfig(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		c.LLM.Provider = p
	}
	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	c.MarketData.Source = strings.ToUpper(c.MarketData.Source)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

func (c *Config) loadCredentials() {
	c.Credentials = Credentials{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		KiteAPIKey:      os.Getenv("KITE_API_KEY"),
		KiteAccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
	}
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed '%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// APIKey returns the key of the configured LLM provider, empty when unset.
func (c *Config) APIKey() string {
	switch c.LLM.Provider {
	case ProviderClaude:
		return c.Credentials.AnthropicAPIKey
	case ProviderOpenAI:
		return c.Credentials.OpenAIAPIKey
	default:
		return ""
	}
}

func (c *Config) ReasoningModel() string {
	if c.LLM.ReasoningModel != "" {
		return c.LLM.ReasoningModel
	}
	if c.LLM.Provider == ProviderOpenAI {
		return "gpt-4o"
	}
	return "claude-sonnet-4-5-20250929"
}

func (c *Config) SentimentModel() string {
	if c.LLM.SentimentModel != "" {
		return c.LLM.SentimentModel
	}
	if c.LLM.Provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "claude-haiku-4-5-20251001"
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) MarketDataTimeout() time.Duration {
	return time.Duration(c.MarketData.TimeoutSeconds) * time.Second
}

func (c *Config) NewsTimeout() time.Duration {
	return time.Duration(c.News.TimeoutSeconds) * time.Second
}
