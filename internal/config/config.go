package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Deployment modes. A process runs exactly one.
const (
	ModePolling = "polling"
	ModeSync    = "sync"
)

// Analysis backends.
const (
	BackendSimulated = "simulated"
	BackendOpenAI    = "openai"
)

type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Mode string `yaml:"mode"` // polling | sync
	} `yaml:"server"`

	Analysis struct {
		Backend               string `yaml:"backend"` // simulated | openai
		Model                 string `yaml:"model"`
		SimulatedDelaySeconds int    `yaml:"simulatedDelaySeconds"`
		TimeoutSeconds        int    `yaml:"timeoutSeconds"` // 0 = no deadline
		MaxConcurrent         int    `yaml:"maxConcurrent"`  // 0 = unbounded
	} `yaml:"analysis"`

	Uploads struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"uploads"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"` // tokens per second
	} `yaml:"rateLimit"`

	// OpenAIKey comes from the environment only, never from the file.
	OpenAIKey string `yaml:"-"`
}

// Load baca file config.yaml. A missing file is not an error: dev deployments
// run fine on defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default is the dev-mode configuration: polling surface, simulated backend,
// CORS open for the Expo client.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.Mode = ModePolling
	cfg.Analysis.Backend = BackendSimulated
	cfg.Analysis.SimulatedDelaySeconds = 5
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

func (c *Config) validate() error {
	switch c.Server.Mode {
	case ModePolling, ModeSync:
	default:
		return fmt.Errorf("invalid server.mode: %q (allowed: polling, sync)", c.Server.Mode)
	}
	switch c.Analysis.Backend {
	case BackendSimulated, BackendOpenAI:
	default:
		return fmt.Errorf("invalid analysis.backend: %q (allowed: simulated, openai)", c.Analysis.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	return nil
}

// SimulatedDelay helper
func (c *Config) SimulatedDelay() time.Duration {
	return time.Duration(c.Analysis.SimulatedDelaySeconds) * time.Second
}

// AnalysisTimeout helper
func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.Analysis.TimeoutSeconds) * time.Second
}
