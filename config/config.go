package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Engine    EngineConfig    `yaml:"engine"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Auth      AuthConfig      `yaml:"auth"`
	Users     []User          `yaml:"users"`
}

type ServerConfig struct {
	Port      int `yaml:"port"`
	RateLimit int `yaml:"rate_limit"` // requests per minute per client
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type StorageConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ReportsDir string `yaml:"reports_dir"`
}

// EngineConfig holds defaults for the AI analysis engine. Per-installation
// overrides live in the settings table and take precedence.
type EngineConfig struct {
	Provider       string `yaml:"provider"`
	OllamaURL      string `yaml:"ollama_url"`
	OllamaModel    string `yaml:"ollama_model"`
	ClaudeModel    string `yaml:"claude_model"`
	OpenAIModel    string `yaml:"openai_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ExtractorConfig struct {
	APIURL         string `yaml:"api_url"`
	APIToken       string `yaml:"api_token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 100
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "legal_docs_review.db"
	}
	if cfg.Storage.ReportsDir == "" {
		cfg.Storage.ReportsDir = "reports"
	}
	if cfg.Engine.Provider == "" {
		cfg.Engine.Provider = "ollama"
	}
	if cfg.Engine.OllamaURL == "" {
		cfg.Engine.OllamaURL = "http://localhost:11434"
	}
	if cfg.Engine.OllamaModel == "" {
		cfg.Engine.OllamaModel = "llama3"
	}
	if cfg.Engine.TimeoutSeconds == 0 {
		cfg.Engine.TimeoutSeconds = 120
	}
	if cfg.Extractor.TimeoutSeconds == 0 {
		cfg.Extractor.TimeoutSeconds = 60
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
