package config

import (
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/roadbook/internal/manualindex"
	"github.com/kailas-cloud/roadbook/internal/stationindex"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("http:\n  port: 9090\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.TranslationTTL() != 6*time.Hour {
		t.Errorf("translation ttl = %v, want 6h", cfg.TranslationTTL())
	}
	if cfg.Retrieval.DisplayCap != 12 || cfg.Retrieval.ManualWeights != manualindex.DefaultWeights() {
		t.Errorf("retrieval defaults not applied: %+v", cfg.Retrieval)
	}
	if cfg.Vector.Enabled {
		t.Error("vector index must be off by default")
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("ROADBOOK_TEST_KEY", "sk-test")
	cfg, err := Parse([]byte(`
llm:
  api_key: ${ROADBOOK_TEST_KEY}
  base_url: ${ROADBOOK_TEST_UNSET:-http://localhost:11434/v1}
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("base url = %q", cfg.LLM.BaseURL)
	}
}

func TestParse_PartialWeightsOverlayDefaults(t *testing.T) {
	cfg, err := Parse([]byte("retrieval:\n  manual_weights:\n    title: 9\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := manualindex.DefaultWeights()
	want.Title = 9
	if cfg.Retrieval.ManualWeights != want {
		t.Errorf("manual weights = %+v, want %+v", cfg.Retrieval.ManualWeights, want)
	}
	if cfg.Retrieval.ManualWeights.FinesTitle != 10 {
		t.Errorf("fines_title boost lost: %d", cfg.Retrieval.ManualWeights.FinesTitle)
	}
	if cfg.Retrieval.StationWeights != stationindex.DefaultWeights() {
		t.Errorf("station weights = %+v", cfg.Retrieval.StationWeights)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"vector without addrs", func(c *Config) { c.Vector.Enabled = true }, "vector.addrs"},
		{"temperature", func(c *Config) { c.Retrieval.AnswerTemperature = 3 }, "answer_temperature"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_RepositoryConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("load %s: %v", env, err)
			}
		})
	}
}
