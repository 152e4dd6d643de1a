package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Football Football `mapstructure:"football"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Server   Server   `mapstructure:"server"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug       bool   `mapstructure:"debug"`
	Environment string `mapstructure:"environment"`
	ConfigFile  string `mapstructure:"config_file"`
}

// AI holds LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Football holds API-Football (RapidAPI) configuration
type Football struct {
	APIKey            string `mapstructure:"api_key"`
	Host              string `mapstructure:"host"`
	BaseURL           string `mapstructure:"base_url"`
	Timeout           string `mapstructure:"timeout"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// Pipeline holds recap pipeline settings
type Pipeline struct {
	ArticleType string   `mapstructure:"article_type"`
	DataSources []string `mapstructure:"data_sources"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string    `mapstructure:"host"`
	Port         int       `mapstructure:"port"`
	ReadTimeout  string    `mapstructure:"read_timeout"`
	WriteTimeout string    `mapstructure:"write_timeout"`
	CORS         CORS      `mapstructure:"cors"`
	RateLimit    RateLimit `mapstructure:"rate_limit"`
}

// CORS holds cross-origin settings
type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimit holds per-client request limits
type RateLimit struct {
	Enabled  bool   `mapstructure:"enabled"`
	Requests int    `mapstructure:"requests"`
	Window   string `mapstructure:"window"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from .env, an optional config file and the
// environment. When requireKeys is set, missing API keys are reported as errors.
func Load(configFile string, requireKeys bool) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".scribe")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if requireKeys {
		if err := validateConfig(config); err != nil {
			return nil, err
		}
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("", false)
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.environment", "development")

	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.timeout", "60s")
	viper.SetDefault("ai.gemini.max_tokens", 2000)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	viper.SetDefault("football.host", "api-football-v1.p.rapidapi.com")
	viper.SetDefault("football.base_url", "https://api-football-v1.p.rapidapi.com/v3")
	viper.SetDefault("football.timeout", "30s")
	viper.SetDefault("football.requests_per_minute", 30)

	viper.SetDefault("pipeline.article_type", "game_recap")
	viper.SetDefault("pipeline.data_sources", []string{"rapidapi_football"})

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "5m")
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.rate_limit.enabled", true)
	viper.SetDefault("server.rate_limit.requests", 10)
	viper.SetDefault("server.rate_limit.window", "1m")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("ai.gemini.model", []string{
		"GEMINI_MODEL",
	})

	bindEnvKeys("football.api_key", []string{
		"RAPIDAPI_KEY",
		"API_FOOTBALL_KEY",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"SCRIBE_DEBUG",
	})

	bindEnvKeys("app.environment", []string{
		"ENVIRONMENT",
	})

	bindEnvKeys("logging.level", []string{
		"LOG_LEVEL",
	})

	bindEnvKeys("logging.format", []string{
		"LOG_FORMAT",
	})

	bindEnvKeys("server.port", []string{
		"PORT",
		"SCRIBE_PORT",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig validates durations and numeric ranges
func postProcessConfig(config *Config) error {
	durations := map[string]string{
		"ai.gemini.timeout":        config.AI.Gemini.Timeout,
		"football.timeout":         config.Football.Timeout,
		"server.read_timeout":      config.Server.ReadTimeout,
		"server.write_timeout":     config.Server.WriteTimeout,
		"server.rate_limit.window": config.Server.RateLimit.Window,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	if config.Football.RequestsPerMinute <= 0 {
		return fmt.Errorf("football.requests_per_minute must be positive, got %d", config.Football.RequestsPerMinute)
	}
	if config.AI.Gemini.Temperature < 0 || config.AI.Gemini.Temperature > 2 {
		return fmt.Errorf("ai.gemini.temperature must be within [0, 2], got %v", config.AI.Gemini.Temperature)
	}

	return nil
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errors []string

	if !isValidAPIKey(config.AI.Gemini.APIKey) {
		errors = append(errors, "Gemini API key is required. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file.")
	}
	if !isValidAPIKey(config.Football.APIKey) {
		errors = append(errors, "API-Football key is required. Set RAPIDAPI_KEY environment variable or football.api_key in config file.")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-gemini-key", "your-rapidapi-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// Duration parses a validated duration string, falling back when empty.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// Convenience getters for commonly used configuration values
func GetAI() AI             { return Get().AI }
func GetFootball() Football { return Get().Football }
func GetServer() Server     { return Get().Server }
func GetLogging() Logging   { return Get().Logging }
func IsDebugMode() bool     { return Get().App.Debug }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
