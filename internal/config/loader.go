package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nurashi/Deskbot/internal/conversation"
)

// Config stores all configuration of the application. Values are read by
// viper from config/config.yaml and can be overridden by environment
// variables (SERVER_ADDR, OPENROUTER_MODEL, CHAT_TRIGGER_WORD, ...).
type Config struct {
	Server     Server     `mapstructure:"server"`
	OpenRouter OpenRouter `mapstructure:"openrouter"`
	Chat       Chat       `mapstructure:"chat"`
}

type Server struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenRouter holds the provider endpoint settings. The API key is not part
// of the file config; it comes from the OPENROUTER_API_KEY environment
// variable.
type OpenRouter struct {
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	Referer        string `mapstructure:"referer"`
	Title          string `mapstructure:"title"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Chat struct {
	SystemInstruction string `mapstructure:"system_instruction"`
	TriggerWord       string `mapstructure:"trigger_word"`
}

const defaultSystemInstruction = "You are a nice help deskbot having a conversation with a human."

func Load(name string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("openrouter.model", "mistralai/mistral-7b-instruct:free")
	v.SetDefault("openrouter.timeout_seconds", 60)
	v.SetDefault("chat.system_instruction", defaultSystemInstruction)
	v.SetDefault("chat.trigger_word", conversation.DefaultTrigger)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is fine; defaults and env cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
