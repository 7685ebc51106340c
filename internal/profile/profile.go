package profile

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
type Profile struct {
	// LLM configuration (OpenAI-compatible protocol).
	// All providers (groq, openai, deepseek, openrouter, ollama) use the same config.
	LLMProvider    string  // Provider identifier: groq, openai, deepseek, openrouter, ollama
	LLMAPIKey      string  // LLM API key
	LLMBaseURL     string  // LLM base URL (optional, has default per provider)
	LLMModel       string  // Model name: llama-3.1-8b-instant, gpt-4o, deepseek-chat, etc.
	LLMTimeout     int     // LLM request timeout in seconds (default: 120)
	LLMMaxTokens   int     // Max completion tokens per call (default: 2048)
	LLMTemperature float32 // Sampling temperature (default: 0.2)

	// Research agent configuration.
	AgentMaxIterations int // Max ReAct iterations before giving up (default: 8)

	Mode        string // dev, prod, demo
	Addr        string
	Port        int
	Data        string
	InstanceURL string
	Version     string
}

// Provider default configurations for LLM.
// Used when LLM_BASE_URL / LLM_MODEL are not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"groq": {
		BaseURL: "https://api.groq.com/openai/v1",
		Model:   "llama-3.1-8b-instant",
	},
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	},
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"openrouter": {
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "deepseek/deepseek-chat",
	},
	"ollama": {
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3.1",
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an LLM API key is configured.
// Ollama runs locally without a key, so it is always considered enabled.
func (p *Profile) IsAIEnabled() bool {
	return p.LLMAPIKey != "" || p.LLMProvider == "ollama"
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads LLM and agent configuration from environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("REPORTSMITH_LLM_PROVIDER", "groq")
	p.LLMAPIKey = getEnvOrDefault("REPORTSMITH_LLM_API_KEY", os.Getenv("GROQ_API_KEY"))
	p.LLMBaseURL = getEnvOrDefault("REPORTSMITH_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("REPORTSMITH_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("REPORTSMITH_LLM_TIMEOUT_SECONDS", 120)
	p.LLMMaxTokens = getEnvOrDefaultInt("REPORTSMITH_LLM_MAX_TOKENS", 2048)
	p.AgentMaxIterations = getEnvOrDefaultInt("REPORTSMITH_AGENT_MAX_ITERATIONS", 8)
	if p.LLMTemperature == 0 {
		p.LLMTemperature = 0.2
	}

	if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
		slog.Warn("unknown LLM provider, using default: groq", "provider", p.LLMProvider)
		p.LLMProvider = "groq"
	}
	if defaults, ok := llmProviderDefaults[p.LLMProvider]; ok {
		if p.LLMBaseURL == "" {
			p.LLMBaseURL = defaults.BaseURL
		}
		if p.LLMModel == "" {
			p.LLMModel = defaults.Model
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	if p.Data != "" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
			return err
		}
		p.Data = dataDir
	}

	if p.LLMTimeout <= 0 {
		p.LLMTimeout = 120
	}
	if p.AgentMaxIterations <= 0 {
		p.AgentMaxIterations = 8
	}
	return nil
}
