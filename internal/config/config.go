package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Sender names are capped independently of the message length and are not
// configurable.
const maxSenderLen = 80

const defaultSystemPrompt = "Du er en hjælpsom dansk chatbot der svarer venligt, kort og præcist."

// Config aggregates every option the service recognizes.
type Config struct {
	Server ServerConfig
	Chat   ChatConfig
	AI     AIConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Chat: chat, AI: ai}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
	// AllowedOrigins is the CORS allow-list. Empty means any origin.
	AllowedOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	var addr string
	switch {
	case strings.Contains(port, ":"):
		// Accept ":3000" or "127.0.0.1:3000" as-is.
		addr = port
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	default:
		addr = ":" + port
	}

	var origins []string
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return ServerConfig{Addr: addr, AllowedOrigins: origins}, nil
}

// ChatConfig describes the conversation log and its limits.
type ChatConfig struct {
	BotName       string
	MaxMessageLen int
	MaxSenderLen  int
	DataFile      string
	UnansweredLog string
}

func loadChatConfig() (ChatConfig, error) {
	maxLen := 500
	if override, err := parseOptionalIntEnv("MAX_MESSAGE_LENGTH"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return ChatConfig{}, fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", *override)
		}
		maxLen = *override
	}

	dataDir := getEnvOrDefault("DATA_DIR", "data")

	return ChatConfig{
		BotName:       getEnvOrDefault("BOT_NAME", "Hanibot"),
		MaxMessageLen: maxLen,
		MaxSenderLen:  maxSenderLen,
		DataFile:      getEnvOrDefault("MESSAGES_FILE", filepath.Join(dataDir, "messages.json")),
		UnansweredLog: getEnvOrDefault("UNANSWERED_LOG", filepath.Join(dataDir, "unanswered.log")),
	}, nil
}

// AIConfig describes the external reply collaborator.
type AIConfig struct {
	APIKey       string
	AccessKey    string
	SecretKey    string
	Model        string
	BaseURL      string
	Region       string
	Temperature  *float64
	MaxTokens    *int
	SystemPrompt string
	Timeout      time.Duration
}

// Enabled reports whether the required credentials are present. A disabled
// collaborator is not an error: escalation falls back to the canned reply.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("ARK_TIMEOUT"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	return AIConfig{
		APIKey:       strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:    strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:    strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:        strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:      getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:       getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		SystemPrompt: getEnvOrDefault("ARK_SYSTEM_PROMPT", defaultSystemPrompt),
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
