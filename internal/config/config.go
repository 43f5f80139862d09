package config

import (
	"os"
	"path/filepath"

	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/spf13/viper"
)

// sharedContext primes the model for affirmation generation. It is part of
// the fixed option set used for both availability probes and creation.
const sharedContext = `You are an encouraging and supportive assistant that provides daily
affirmations based on completed tasks. Keep affirmations positive,
personalized, and under 100 words. Focus on acknowledging effort
and progress. Be warm and genuine.`

// ModelConfig holds on-device model runtime configuration.
type ModelConfig struct {
	Endpoint       string   `mapstructure:"endpoint"`
	Name           string   `mapstructure:"name"`
	Temperature    float64  `mapstructure:"temperature"`
	TopK           int      `mapstructure:"top_k"`
	AutoDownload   bool     `mapstructure:"auto_download"`
	InputLanguages []string `mapstructure:"input_languages"`
	OutputLanguage string   `mapstructure:"output_language"`
}

// UIConfig holds rendering configuration.
type UIConfig struct {
	DoneIcon    string `mapstructure:"done_icon"`
	PendingIcon string `mapstructure:"pending_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
	Theme       string `mapstructure:"theme"`
	MaxWidth    int    `mapstructure:"max_width"`
}

// Config holds the application configuration.
type Config struct {
	Storage string      `mapstructure:"storage"`
	DataDir string      `mapstructure:"data_dir"`
	Model   ModelConfig `mapstructure:"model"`
	UI      UIConfig    `mapstructure:"ui"`
}

// ModelOptions builds the fixed session option set from the config.
// The same value must be used for availability probes and creation.
func (c *Config) ModelOptions() genai.Options {
	return genai.Options{
		Model:                  c.Model.Name,
		Temperature:            c.Model.Temperature,
		TopK:                   c.Model.TopK,
		SharedContext:          sharedContext,
		ExpectedInputLanguages: c.Model.InputLanguages,
		OutputLanguage:         c.Model.OutputLanguage,
	}
}

// DefaultDataDir returns the default data directory (~/.dailyctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dailyctl")
	}
	return filepath.Join(home, ".dailyctl")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "file")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("model.endpoint", "http://127.0.0.1:11434")
	v.SetDefault("model.name", "gemma3:1b")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.top_k", 40)
	v.SetDefault("model.auto_download", false)
	v.SetDefault("model.input_languages", []string{"en", "ja", "es"})
	v.SetDefault("model.output_language", "en")
	v.SetDefault("ui.done_icon", "✓")
	v.SetDefault("ui.pending_icon", "○")
	v.SetDefault("ui.streak_icon", "🔥")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.max_width", 80)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "dailyctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DAILYCTL_STORAGE, DAILYCTL_DATA_DIR, etc.
	v.SetEnvPrefix("DAILYCTL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
