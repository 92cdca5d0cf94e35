package llm

import (
	"fmt"
	"os"
	"sort"
)

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

// ModelSpec resolves a CLI model selector to a provider, a concrete model
// name, and the environment variable holding its API key.
type ModelSpec struct {
	Provider Provider
	Model    string
	KeyEnv   string
}

// modelRegistry maps the selectors accepted on the command line.
var modelRegistry = map[string]ModelSpec{
	"claude": {Provider: ProviderAnthropic, Model: "claude-sonnet-4-20250514", KeyEnv: "ANTHROPIC_API_KEY"},
	"gpt4":   {Provider: ProviderOpenAI, Model: "gpt-4o", KeyEnv: "OPENAI_API_KEY"},
	"gemini": {Provider: ProviderGemini, Model: "gemini-2.0-flash", KeyEnv: "GEMINI_API_KEY"},
}

// KnownModels returns the accepted model selectors, sorted.
func KnownModels() []string {
	names := make([]string, 0, len(modelRegistry))
	for name := range modelRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveModel looks up a model selector.
func ResolveModel(name string) (ModelSpec, error) {
	spec, ok := modelRegistry[name]
	if !ok {
		return ModelSpec{}, fmt.Errorf("unknown model %q (valid: %v)", name, KnownModels())
	}
	return spec, nil
}

// NewClientForModel creates a client for a model selector. The API key comes
// from apiKey when non-empty, otherwise from the selector's environment
// variable.
func NewClientForModel(name, apiKey string) (Client, error) {
	spec, err := ResolveModel(name)
	if err != nil {
		return nil, err
	}

	if apiKey == "" {
		apiKey = os.Getenv(spec.KeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key for model %q; set %s", name, spec.KeyEnv)
	}

	switch spec.Provider {
	case ProviderAnthropic:
		client := NewAnthropicClient(apiKey)
		client.SetModel(spec.Model)
		return client, nil
	case ProviderOpenAI:
		client := NewOpenAIClient(apiKey)
		client.SetModel(spec.Model)
		return client, nil
	case ProviderGemini:
		client := NewGeminiClient(apiKey)
		client.SetModel(spec.Model)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", spec.Provider)
	}
}
