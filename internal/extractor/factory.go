package extractor

import (
	"fmt"

	"invex/internal/config"
	"invex/internal/port"
)

// ProviderFactory is a function that creates an Extractor from the extractor
// config section.
type ProviderFactory func(cfg *config.ExtractorConfig) (port.Extractor, error)

// registry of extractor provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates an Extractor using the registered factory for the
// configured provider.
func NewExtractor(cfg *config.ExtractorConfig) (port.Extractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
