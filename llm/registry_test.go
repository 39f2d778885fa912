package llm

import (
	"errors"
	"testing"
)

func TestRegistry_DescribeKnown(t *testing.T) {
	r := DefaultRegistry()

	cfg, err := r.Describe("openai")
	if err != nil {
		t.Fatalf("Describe(openai) failed: %v", err)
	}
	if cfg.Kind != ChatCompletion {
		t.Errorf("Expected chat-completion kind, got %q", cfg.Kind)
	}
	if cfg.Endpoint == "" || cfg.DefaultModel == "" {
		t.Errorf("Incomplete config: %+v", cfg)
	}

	cfg, err = r.Describe("gemini")
	if err != nil {
		t.Fatalf("Describe(gemini) failed: %v", err)
	}
	if cfg.Kind != GenerateContent {
		t.Errorf("Expected generate-content kind, got %q", cfg.Kind)
	}
}

func TestRegistry_DescribeUnknown(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Describe("not-a-provider")
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Expected ErrUnknownProvider, got: %v", err)
	}
}

func TestRegistry_AllPreservesOrder(t *testing.T) {
	r := NewRegistry(
		ProviderConfig{ID: "b", Kind: ChatCompletion},
		ProviderConfig{ID: "a", Kind: GenerateContent},
	)

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(all))
	}
	if all[0].ID != "b" || all[1].ID != "a" {
		t.Errorf("Registration order not preserved: %v, %v", all[0].ID, all[1].ID)
	}
}
