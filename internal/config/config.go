// Package config loads the service configuration from config/<env>.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/roadbook/internal/manualindex"
	"github.com/kailas-cloud/roadbook/internal/stationindex"
)

// Config holds the roadbook configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Auth        AuthConfig        `yaml:"auth"`
	LLM         LLMConfig         `yaml:"llm"`
	Translation TranslationConfig `yaml:"translation"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Data        DataConfig        `yaml:"data"`
	Vector      VectorConfig      `yaml:"vector"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No tokens disables auth.
type AuthConfig struct {
	AppTokens []string `yaml:"app_tokens"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LLMConfig holds the OpenAI-compatible endpoint settings.
type LLMConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
	TimeoutSec     int    `yaml:"timeout_sec"`
}

// TranslationConfig holds translation gateway settings.
type TranslationConfig struct {
	CacheTTLSec int     `yaml:"cache_ttl_sec"`
	Temperature float32 `yaml:"temperature"`
}

// RetrievalConfig holds lexical scoring and presentation settings.
type RetrievalConfig struct {
	ManualWeights     manualindex.Weights  `yaml:"manual_weights"`
	StationWeights    stationindex.Weights `yaml:"station_weights"`
	TopK              int                  `yaml:"top_k"`
	WeakThreshold     int                  `yaml:"weak_threshold"`
	DisplayCap        int                  `yaml:"display_cap"`
	AnswerTemperature float32              `yaml:"answer_temperature"`
}

// DataConfig overrides the embedded datasets. Empty paths use the embedded copies.
type DataConfig struct {
	ManualPath   string `yaml:"manual_path"`
	StationsPath string `yaml:"stations_path"`
	LexiconPath  string `yaml:"lexicon_path"`
}

// VectorConfig holds the optional vector fallback index settings.
type VectorConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Dimensions       int      `yaml:"dimensions"`
	TopK             int      `yaml:"top_k"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	EmbedCacheTTLSec int      `yaml:"embed_cache_ttl_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
// Scoring weights left out of a weight block keep their default values.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	// Weight blocks overlay the defaults key by key.
	var cfg Config
	cfg.Retrieval.ManualWeights = manualindex.DefaultWeights()
	cfg.Retrieval.StationWeights = stationindex.DefaultWeights()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.LLM.ChatModel == "" {
		c.LLM.ChatModel = "gpt-4o-mini"
	}
	if c.LLM.EmbeddingModel == "" {
		c.LLM.EmbeddingModel = "text-embedding-3-small"
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = 30
	}
	if c.Translation.CacheTTLSec <= 0 {
		c.Translation.CacheTTLSec = 6 * 60 * 60
	}
	if c.Retrieval.ManualWeights == (manualindex.Weights{}) {
		c.Retrieval.ManualWeights = manualindex.DefaultWeights()
	}
	if c.Retrieval.StationWeights == (stationindex.Weights{}) {
		c.Retrieval.StationWeights = stationindex.DefaultWeights()
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = manualindex.DefaultTopK
	}
	if c.Retrieval.WeakThreshold <= 0 {
		c.Retrieval.WeakThreshold = manualindex.DefaultWeakThreshold
	}
	if c.Retrieval.DisplayCap <= 0 {
		c.Retrieval.DisplayCap = 12
	}
	if c.Retrieval.AnswerTemperature <= 0 {
		c.Retrieval.AnswerTemperature = 0.2
	}
	if c.Vector.Dimensions <= 0 {
		c.Vector.Dimensions = 1536
	}
	if c.Vector.TopK <= 0 {
		c.Vector.TopK = 5
	}
	if c.Vector.ReadinessTimeout <= 0 {
		c.Vector.ReadinessTimeout = 10
	}
	if c.Vector.EmbedCacheTTLSec <= 0 {
		c.Vector.EmbedCacheTTLSec = 24 * 60 * 60
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Retrieval.AnswerTemperature > 2 {
		return fmt.Errorf("retrieval.answer_temperature must be at most 2, got %g", c.Retrieval.AnswerTemperature)
	}
	if c.Vector.Enabled && len(c.Vector.Addrs) == 0 {
		return fmt.Errorf("vector.addrs is required when vector.enabled is true")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// TranslationTTL returns the translation cache lifetime.
func (c *Config) TranslationTTL() time.Duration {
	return time.Duration(c.Translation.CacheTTLSec) * time.Second
}

// LLMTimeout returns the per-request timeout for the language model.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSec) * time.Second
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
