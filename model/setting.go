package model

import (
	"time"
)

// Recognized setting keys. The settings table stays an opaque string
// key/value store, but only these keys have a defined effect.
const (
	SettingAIProvider   = "ai_provider"
	SettingOllamaURL    = "ollama_url"
	SettingOllamaModel  = "ollama_model"
	SettingClaudeAPIKey = "claude_api_key"
	SettingOpenAIAPIKey = "openai_api_key"
)

// RecognizedSettingKeys lists every key the backend acts on
func RecognizedSettingKeys() []string {
	return []string{
		SettingAIProvider,
		SettingOllamaURL,
		SettingOllamaModel,
		SettingClaudeAPIKey,
		SettingOpenAIAPIKey,
	}
}

// Setting is a single persisted configuration entry
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderSettings is the typed view over the recognized setting keys,
// resolved with config defaults by the registry.
type ProviderSettings struct {
	AIProvider   string
	OllamaURL    string
	OllamaModel  string
	ClaudeAPIKey string
	OpenAIAPIKey string
}
