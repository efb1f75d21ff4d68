package config

import (
	"errors"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ContactStorageLog    = "log"
	ContactStorageMemory = "memory"
	ContactStorageRedis  = "redis"
)

var ErrUnknownContactStorage = errors.New("unknown contact storage")

type HTTP struct {
	Address           string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3000"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins    []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type OpenAI struct {
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" env-required:"true"`
	OpenAIModel   string `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL string `yaml:"open_ai_base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com"`
}

type Chat struct {
	HistoryWindow    int     `yaml:"history_window" env:"CHAT_HISTORY_WINDOW" env-default:"8"`
	MaxTokens        int     `yaml:"max_tokens" env:"CHAT_MAX_TOKENS" env-default:"150"`
	ModelTemperature float32 `yaml:"model_temperature" env:"MODEL_TEMPERATURE" env-default:"0.7"`
	PromptTokenLimit int     `yaml:"prompt_token_limit" env:"CHAT_PROMPT_TOKEN_LIMIT" env-default:"3500"`
}

type Contact struct {
	Storage string `yaml:"storage" env:"CONTACT_STORAGE" env-default:"log"`
}

type Redis struct {
	Endpoint string `yaml:"endpoint" env:"REDIS_ENDPOINT" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Telegram struct {
	TelegramAPIToken string  `env:"TELEGRAM_APITOKEN"`
	NotifyChatIDs    []int64 `yaml:"notify_chat_ids" env:"TELEGRAM_NOTIFY_CHAT_IDS" env-separator:","`
}

func (t Telegram) Enabled() bool {
	return t.TelegramAPIToken != "" && len(t.NotifyChatIDs) > 0
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	OpenAI   OpenAI   `yaml:"openai"`
	Chat     Chat     `yaml:"chat"`
	Contact  Contact  `yaml:"contact"`
	Redis    Redis    `yaml:"redis"`
	Telegram Telegram `yaml:"telegram"`
	Log      Log      `yaml:"log"`
}

// StorageConfig is the part of Config needed by tools that only read stored
// contacts. It does not require an OpenAI key.
type StorageConfig struct {
	Redis Redis `yaml:"redis"`
	Log   Log   `yaml:"log"`
}

// LoadConfig reads cfgPath when it exists and then the environment, which
// wins over the file.
func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if err := read(cfgPath, &cfg); err != nil {
		return nil, err
	}
	switch cfg.Contact.Storage {
	case ContactStorageLog, ContactStorageMemory, ContactStorageRedis:
	default:
		return nil, ErrUnknownContactStorage
	}
	return &cfg, nil
}

func LoadStorageConfig(cfgPath string) (*StorageConfig, error) {
	var cfg StorageConfig
	if err := read(cfgPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func read(cfgPath string, cfg any) error {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			if err = cleanenv.ReadConfig(cfgPath, cfg); err != nil {
				return err
			}
		}
	}
	return cleanenv.ReadEnv(cfg)
}
