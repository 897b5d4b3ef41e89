package llm

import (
	"errors"

	"ai-trader/internal/interfaces"
)

// ErrUnavailable is returned when no provider credentials are configured.
var ErrUnavailable = errors.New("llm provider not configured")

// Capability is an optional provider handle. It is decided once at startup;
// callers check Handle instead of testing for nil or an empty key.
type Capability struct {
	provider interfaces.LLMProvider
}

// Configured wraps a live provider.
func Configured(p interfaces.LLMProvider) Capability {
	if p == nil {
		return Unavailable()
	}
	return Capability{provider: p}
}

// Unavailable marks the capability as absent.
func Unavailable() Capability {
	return Capability{}
}

func (c Capability) Handle() (interfaces.LLMProvider, bool) {
	return c.provider, c.provider != nil
}
