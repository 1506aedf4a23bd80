package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	configContent := `
server:
  port: 9090
minio:
  endpoint: "localhost:9000"
  access_key: "minioadmin"
  secret_key: "minioadmin"
  bucket: "test-bucket"
  use_ssl: false
  expire_days: 14
ocr:
  api_url: "https://ocr.test"
  api_key: "ocr-key"
  model: "mistral-ocr-latest"
llm:
  base_url: "https://llm.test/v1"
  api_key: "llm-key"
  model: "test-model"
  temperature: 0.5
  max_tokens: 4096
auth:
  jwt_secret: "test-secret"
  token_expire_hours: 48
log:
  level: "debug"
  format: "json"
store:
  driver: "memory"
  max_contracts: 50
  draft_retention_days: 7
users:
  - username: "testuser"
    password: "testpass"
    id: "user-1"
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Minio.Endpoint != "localhost:9000" {
		t.Errorf("Expected endpoint localhost:9000, got %s", cfg.Minio.Endpoint)
	}
	if cfg.Minio.ExpireDays != 14 {
		t.Errorf("Expected expire_days 14, got %d", cfg.Minio.ExpireDays)
	}
	if cfg.OCR.APIURL != "https://ocr.test" {
		t.Errorf("Expected ocr api_url https://ocr.test, got %s", cfg.OCR.APIURL)
	}
	if cfg.LLM.MaxTokens != 4096 {
		t.Errorf("Expected max_tokens 4096, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.5 {
		t.Errorf("Expected temperature 0.5, got %f", cfg.LLM.Temperature)
	}
	if cfg.Auth.TokenExpireHours != 48 {
		t.Errorf("Expected token_expire_hours 48, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Expected store driver memory, got %s", cfg.Store.Driver)
	}
	if cfg.Store.MaxContracts != 50 {
		t.Errorf("Expected max_contracts 50, got %d", cfg.Store.MaxContracts)
	}
	if cfg.Store.DraftRetentionDays != 7 {
		t.Errorf("Expected draft_retention_days 7, got %d", cfg.Store.DraftRetentionDays)
	}
	if len(cfg.Users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(cfg.Users))
	}
	if cfg.Users[0].ID != "user-1" {
		t.Errorf("Expected user id user-1, got %s", cfg.Users[0].ID)
	}
}

func TestLoadDefaults(t *testing.T) {
	configContent := `
minio:
  endpoint: "localhost:9000"
  access_key: "test"
  secret_key: "test"
  bucket: "bucket"
`
	tmpFile, err := os.CreateTemp("", "config-defaults-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Minio.ExpireDays != 7 {
		t.Errorf("Expected default expire_days 7, got %d", cfg.Minio.ExpireDays)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token_expire_hours 24, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.OCR.Model != "mistral-ocr-latest" {
		t.Errorf("Expected default ocr model mistral-ocr-latest, got %s", cfg.OCR.Model)
	}
	if cfg.LLM.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("Expected default llm base_url, got %s", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Temperature != 1 {
		t.Errorf("Expected default temperature 1, got %f", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 8192 {
		t.Errorf("Expected default max_tokens 8192, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Expected default store driver memory, got %s", cfg.Store.Driver)
	}
	if cfg.Store.DraftRetentionDays != 30 {
		t.Errorf("Expected default draft_retention_days 30, got %d", cfg.Store.DraftRetentionDays)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Expected default log format text, got %s", cfg.Log.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	configContent := `
ocr:
  api_key: "file-key"
llm:
  api_key: "file-key"
`
	tmpFile, err := os.CreateTemp("", "config-env-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	t.Setenv("MISTRAL_API_KEY", "env-ocr-key")
	t.Setenv("GROQ_API_KEY", "env-llm-key")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OCR.APIKey != "env-ocr-key" {
		t.Errorf("Expected env override for ocr api key, got %s", cfg.OCR.APIKey)
	}
	if cfg.LLM.APIKey != "env-llm-key" {
		t.Errorf("Expected env override for llm api key, got %s", cfg.LLM.APIKey)
	}
	if cfg.Store.DSN != "postgres://env" {
		t.Errorf("Expected env override for dsn, got %s", cfg.Store.DSN)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("Expected env override for jwt secret, got %s", cfg.Auth.JWTSecret)
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "config-invalid-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString("invalid: yaml: content:"); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "user1", Password: "pass1", ID: "u1"},
			{Username: "user2", Password: "pass2", ID: "u2"},
		},
	}

	user := cfg.FindUser("user1")
	if user == nil {
		t.Fatal("Expected to find user1")
	}
	if user.ID != "u1" {
		t.Errorf("Expected id u1, got %s", user.ID)
	}

	user = cfg.FindUser("nonexistent")
	if user != nil {
		t.Error("Expected nil for non-existent user")
	}
}
