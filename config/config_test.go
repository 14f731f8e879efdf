package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yaml := `llm:
  providers:
    - name: gemini
      enabled: true
      priority: 1
      api_key: test-key
      model: gemini-2.5-pro
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.LLM.Providers) != 1 || cfg.LLM.Providers[0].Model != "gemini-2.5-pro" {
		t.Fatalf("providers = %+v", cfg.LLM.Providers)
	}
	if cfg.LLM.IntentModel == "" {
		t.Error("intent model default missing")
	}
	if cfg.LLM.IntentModel == cfg.LLM.Providers[0].Model {
		t.Errorf("intent model %q must be a tier apart from the conversation model", cfg.LLM.IntentModel)
	}

	if cfg.Orchestrator.MaxToolIterations != 3 {
		t.Errorf("max tool iterations = %d, want 3", cfg.Orchestrator.MaxToolIterations)
	}
	if cfg.Orchestrator.PaymentDelaySeconds != 5 {
		t.Errorf("payment delay = %d, want 5", cfg.Orchestrator.PaymentDelaySeconds)
	}
	if cfg.Session.TTLSeconds != 86400 || cfg.Session.MaxHistory != 20 {
		t.Errorf("session defaults = %+v", cfg.Session)
	}
}
