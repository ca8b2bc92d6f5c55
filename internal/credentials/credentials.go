package credentials

import "github.com/Karthik0081/smart-exam-ai-genius/internal/config"

// Known credential names for the remote AI providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Provider exposes API credentials to the generation pipeline without
// binding it to any particular storage mechanism.
type Provider interface {
	Has(name string) bool
	Get(name string) string
}

// ConfigStore serves credentials loaded from the environment config.
type ConfigStore struct {
	keys map[string]string
}

func NewConfigStore(cfg *config.Config) *ConfigStore {
	return &ConfigStore{
		keys: map[string]string{
			ProviderOpenAI: cfg.OpenAIAPIKey,
			ProviderGemini: cfg.GeminiAPIKey,
		},
	}
}

func (s *ConfigStore) Has(name string) bool {
	return s.keys[name] != ""
}

func (s *ConfigStore) Get(name string) string {
	return s.keys[name]
}

// StaticStore is a fixed credential map, mainly for tests.
type StaticStore map[string]string

func (s StaticStore) Has(name string) bool { return s[name] != "" }
func (s StaticStore) Get(name string) string { return s[name] }
