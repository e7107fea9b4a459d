package llm

import "testing"

func TestConfig_ValidateUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestConfig_ValidateMockNeedsNoKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mock provider should not require a key: %v", err)
	}
}

func TestConfig_ValidateMissingKey(t *testing.T) {
	for _, provider := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		cfg := DefaultConfig()
		cfg.Provider = provider
		if err := cfg.Validate(); err == nil {
			t.Errorf("provider %s: expected error for missing API key", provider)
		}
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SRA_LLM_PROVIDER", "anthropic")
	t.Setenv("SRA_ANTHROPIC_API_KEY", "test-key")
	t.Setenv("SRA_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic, got %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "test-key" {
		t.Fatalf("expected test-key, got %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("expected claude-sonnet, got %q", cfg.Anthropic.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "oa-key")
	t.Setenv("ANTHROPIC_API_KEY", "an-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai to win discovery, got %q", cfg.Provider)
	}
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected discovery to fail with no keys set")
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Fatalf("friendly name not resolved: %q", got)
	}
	if got := resolveModel("some-direct-id", anthropicModels); got != "some-direct-id" {
		t.Fatalf("direct IDs must pass through: %q", got)
	}
}
