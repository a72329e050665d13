// config предоставляет структуру конфигурации сервиса мониторинга
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// Перед чтением ENV подхватывается ./.env, если он есть.
type Config struct {
	Env      string         `yaml:"env"      env:"ENV" env-default:"local"`
	DB       DBConfig       `yaml:"db"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Telegram TelegramConfig `yaml:"telegram"`
	HTTP     HTTPConfig     `yaml:"http"`
	Limits   LimitsConfig   `yaml:"limits"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	// BusyRetries — сколько раз повторять операцию при блокировке/конфликте транзакций.
	BusyRetries int `yaml:"busy_retries" env:"DB_BUSY_RETRIES" env-default:"3"`
	// BusyRetryDelay — фиксированная пауза между повторами.
	BusyRetryDelay time.Duration `yaml:"busy_retry_delay" env:"DB_BUSY_RETRY_DELAY" env-default:"1s"`
}

// ScrapeConfig — параметры цикла мониторинга источников.
type ScrapeConfig struct {
	AvitoURL string `yaml:"avito_url" env:"AVITO_SEARCH_URL" env-default:"https://www.avito.ru/ufa/kvartiry/sdam/na_dlitelnyy_srok-ASgBAgICAkSSA8gQ8AeQUg"`
	CianURL  string `yaml:"cian_url"  env:"CIAN_SEARCH_URL"  env-default:"https://ufa.cian.ru/cat.php?deal_type=rent&engine_version=2&offer_type=flat&region=176&type=4"`
	// City — город поиска; участвует в адресных шаблонах и как
	// запасная локация, когда адрес не извлекается.
	City string `yaml:"city" env:"CITY" env-default:"Уфа"`
	// MaxPrice — потолок цены, руб/мес; дороже — не сохраняем.
	MaxPrice int64 `yaml:"max_price" env:"MAX_PRICE" env-default:"30000"`
	// Interval — пауза между циклами мониторинга.
	Interval time.Duration `yaml:"interval" env:"CHECK_INTERVAL" env-default:"5m"`
	// SourcePause — пауза между источниками внутри цикла.
	SourcePause time.Duration `yaml:"source_pause" env:"SOURCE_PAUSE" env-default:"15s"`
	// Cooldown — увеличенная пауза после цикла, завершившегося ошибкой.
	Cooldown time.Duration `yaml:"cooldown" env:"ERROR_COOLDOWN" env-default:"2m"`
}

// TelegramConfig — доступ к Bot API.
// Уведомления включаются только при заполненных Token и ChannelID.
type TelegramConfig struct {
	Token     string `yaml:"token"      env:"TELEGRAM_BOT_TOKEN"`
	ChannelID string `yaml:"channel_id" env:"TELEGRAM_CHANNEL_ID"`
	// NotifyPause — пауза между отправками соседних уведомлений.
	NotifyPause time.Duration `yaml:"notify_pause" env:"NOTIFY_PAUSE" env-default:"3s"`
	// PollTimeout — таймаут long-poll запроса getUpdates.
	PollTimeout time.Duration `yaml:"poll_timeout" env:"POLL_TIMEOUT" env-default:"30s"`
}

// Enabled — заданы ли обе обязательные для отправки настройки.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChannelID != ""
}

// HTTPConfig — сетевые настройки служебного HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// LimitsConfig — серверные лимиты на выдачу списков.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int `yaml:"default" env:"DEFAULT_LIMIT" env-default:"5"`
	// Верхняя граница для limit.
	Max int `yaml:"max" env:"MAX_LIMIT" env-default:"50"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	// .env подхватывается молча: в контейнерных окружениях его нет.
	_ = godotenv.Load()

	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.DB.BusyRetries < 1 {
		return fmt.Errorf("db.busy_retries must be >= 1")
	}
	if c.DB.BusyRetryDelay <= 0 {
		return fmt.Errorf("db.busy_retry_delay must be > 0")
	}
	if c.Scrape.AvitoURL == "" || c.Scrape.CianURL == "" {
		return fmt.Errorf("scrape.avito_url and scrape.cian_url are required")
	}
	if c.Scrape.MaxPrice <= 0 {
		return fmt.Errorf("scrape.max_price must be > 0")
	}
	if c.Scrape.Interval < 30*time.Second {
		return fmt.Errorf("scrape.interval must be at least 30s")
	}
	if c.Scrape.Cooldown <= 0 {
		return fmt.Errorf("scrape.cooldown must be > 0")
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	return nil
}
