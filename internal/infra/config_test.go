package infra

import "testing"

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig should fail without OPENROUTER_API_KEY")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_URL", "")
	t.Setenv("IMAGE_MODEL", "")
	t.Setenv("TEXT_MODEL", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("PORT", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.OpenRouterURL != "https://openrouter.ai/api/v1/chat/completions" {
		t.Fatalf("OpenRouterURL mismatch: %q", cfg.OpenRouterURL)
	}
	if cfg.ImageModel != "google/gemini-2.5-flash-image-preview" {
		t.Fatalf("ImageModel mismatch: %q", cfg.ImageModel)
	}
	if cfg.TextModel != "openai/gpt-4o-mini" {
		t.Fatalf("TextModel mismatch: %q", cfg.TextModel)
	}
	if cfg.OutputDir != "outputs" {
		t.Fatalf("OutputDir mismatch: %q", cfg.OutputDir)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 16*1024*1024 {
		t.Fatalf("MaxUploadBytes mismatch: %d", cfg.MaxUploadBytes)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("OUTPUT_DIR", "/tmp/pictures")
	t.Setenv("MAX_UPLOAD_MB", "4")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.OutputDir != "/tmp/pictures" {
		t.Fatalf("OutputDir mismatch: %q", cfg.OutputDir)
	}
	if cfg.MaxUploadBytes != 4*1024*1024 {
		t.Fatalf("MaxUploadBytes mismatch: %d", cfg.MaxUploadBytes)
	}
}
