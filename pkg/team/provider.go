package team

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/azure"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/lmstudio"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/model"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/openai"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/provider"
)

// Kind identifies an LLM backend.
type Kind string

const (
	KindOpenAI   Kind = "openai"
	KindAzure    Kind = "azure"
	KindLMStudio Kind = "lmstudio"
)

// Valid reports whether k is one of the supported backends.
func (k Kind) Valid() bool {
	switch k {
	case KindOpenAI, KindAzure, KindLMStudio:
		return true
	}
	return false
}

// ProviderConfig holds the resolved connection parameters for the chosen
// backend. Exactly one ProviderConfig is active per process; it is selected
// once at startup and never mutated afterward.
type ProviderConfig struct {
	Kind        Kind
	BaseURL     string
	APIKey      string
	Model       string
	APIVersion  string // Azure only.
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Resolution errors. Both are configuration errors: surfaced to the caller
// with no retry.
var (
	ErrNoProvider   = errors.New("team: no provider configured")
	ErrNoCredential = errors.New("team: missing provider credential")
)

// ResolveProvider inspects environment variables and produces a single
// ProviderConfig or fails. Selection order:
//
//  1. SELECTED_PROVIDER names a backend explicitly;
//  2. otherwise the first backend whose credential variable is present
//     (OPENAI_API_KEY, then AZURE_OPENAI_API_KEY, then LMSTUDIO_BASE_URL);
//  3. otherwise ErrNoProvider.
//
// Resolution is pure environment inspection; no network calls are made.
func ResolveProvider() (ProviderConfig, error) {
	if selected := strings.ToLower(strings.TrimSpace(os.Getenv("SELECTED_PROVIDER"))); selected != "" {
		return ResolveProviderKind(selected)
	}

	switch {
	case os.Getenv("OPENAI_API_KEY") != "":
		return openAIFromEnv()
	case os.Getenv("AZURE_OPENAI_API_KEY") != "":
		return azureFromEnv()
	case os.Getenv("LMSTUDIO_BASE_URL") != "":
		return lmStudioFromEnv()
	}

	return ProviderConfig{}, ErrNoProvider
}

// ResolveProviderKind resolves the named backend from environment variables,
// bypassing SELECTED_PROVIDER. Unknown kinds are an error.
func ResolveProviderKind(kind string) (ProviderConfig, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.Valid() {
		return ProviderConfig{}, fmt.Errorf("team: unsupported provider %q", kind)
	}

	switch k {
	case KindAzure:
		return azureFromEnv()
	case KindLMStudio:
		return lmStudioFromEnv()
	default:
		return openAIFromEnv()
	}
}

func openAIFromEnv() (ProviderConfig, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return ProviderConfig{}, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrNoCredential)
	}

	return ProviderConfig{
		Kind:        KindOpenAI,
		BaseURL:     envOr("OPENAI_BASE_URL", "https://api.openai.com"),
		APIKey:      key,
		Model:       envOr("OPENAI_MODEL", "gpt-4"),
		Temperature: envFloat("OPENAI_TEMPERATURE", 0.7),
		Timeout:     120 * time.Second,
	}, nil
}

func azureFromEnv() (ProviderConfig, error) {
	key := os.Getenv("AZURE_OPENAI_API_KEY")
	if key == "" {
		return ProviderConfig{}, fmt.Errorf("%w: AZURE_OPENAI_API_KEY is not set", ErrNoCredential)
	}

	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if endpoint == "" {
		return ProviderConfig{}, fmt.Errorf("%w: AZURE_OPENAI_ENDPOINT is not set", ErrNoCredential)
	}

	return ProviderConfig{
		Kind:        KindAzure,
		BaseURL:     endpoint,
		APIKey:      key,
		Model:       envOr("AZURE_OPENAI_DEPLOYMENT_MODEL", "gpt-35-turbo"),
		APIVersion:  envOr("AZURE_OPENAI_API_VERSION", azure.DefaultAPIVersion),
		Temperature: envFloat("AZURE_TEMPERATURE", 0.7),
		Timeout:     120 * time.Second,
	}, nil
}

func lmStudioFromEnv() (ProviderConfig, error) {
	// Local servers run without credentials; the base URL is kept verbatim.
	return ProviderConfig{
		Kind:        KindLMStudio,
		BaseURL:     envOr("LMSTUDIO_BASE_URL", lmstudio.DefaultBaseURL),
		APIKey:      os.Getenv("LMSTUDIO_API_KEY"),
		Model:       envOr("LMSTUDIO_MODEL", "llama-2-7b-chat"),
		Temperature: envFloat("LMSTUDIO_TEMPERATURE", 0.7),
		MaxTokens:   envInt("LMSTUDIO_MAX_TOKENS", 2048),
		Timeout:     300 * time.Second,
	}, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envFloat(name string, fallback float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// CompleterFactory creates a Completer for a resolved provider and the
// per-agent model settings.
type CompleterFactory func(cfg ProviderConfig, m model.Model) (provider.Completer, error)

var (
	factoryMu   sync.RWMutex
	factories   = map[Kind]CompleterFactory{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		factories[KindOpenAI] = newOpenAI
		factories[KindAzure] = newAzure
		factories[KindLMStudio] = newLMStudio
	})
}

// RegisterCompleter registers a custom completer factory under the given
// kind. It can be called before NewCompleter to extend or replace backends.
func RegisterCompleter(kind Kind, factory CompleterFactory) {
	ensureDefaults()

	factoryMu.Lock()
	defer factoryMu.Unlock()

	factories[kind] = factory
}

// NewCompleter creates a Completer from a ProviderConfig using the registered
// factory for its Kind. The model m carries per-agent overrides: an empty
// model name, zero temperature, or zero max-tokens fall back to the
// provider's values.
func NewCompleter(cfg ProviderConfig, m model.Model) (provider.Completer, error) {
	ensureDefaults()

	factoryMu.RLock()
	factory, ok := factories[cfg.Kind]
	factoryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("team: unknown provider kind %q", cfg.Kind)
	}

	return factory(cfg, mergeModel(cfg, m))
}

// mergeModel fills zero-valued model fields from the provider config.
func mergeModel(cfg ProviderConfig, m model.Model) model.Model {
	if m.Name == "" {
		m.Name = cfg.Model
	}
	if m.Temperature == 0 {
		m.Temperature = cfg.Temperature
	}
	if m.MaxTokens == 0 {
		m.MaxTokens = cfg.MaxTokens
	}
	return m
}

func httpClient(cfg ProviderConfig) *http.Client {
	if cfg.Timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: cfg.Timeout}
}

func newOpenAI(cfg ProviderConfig, m model.Model) (provider.Completer, error) {
	a := openai.New(cfg.BaseURL, cfg.APIKey, m.Name, httpClient(cfg))
	a.Temperature = m.Temperature
	a.MaxTokens = m.MaxTokens
	return a, nil
}

func newAzure(cfg ProviderConfig, m model.Model) (provider.Completer, error) {
	a := azure.New(cfg.BaseURL, cfg.APIKey, m.Name, cfg.APIVersion, httpClient(cfg))
	a.Temperature = m.Temperature
	a.MaxTokens = m.MaxTokens
	return a, nil
}

func newLMStudio(cfg ProviderConfig, m model.Model) (provider.Completer, error) {
	a := lmstudio.New(cfg.BaseURL, cfg.APIKey, m.Name, httpClient(cfg))
	a.Temperature = m.Temperature
	a.MaxTokens = m.MaxTokens
	return a, nil
}
