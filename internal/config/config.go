package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`

		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Matching MatchingConfig `yaml:"matching"`
}

type MatchingConfig struct {
	StartupDailySwipes  int `yaml:"startup_daily_swipes"`
	InvestorDailySwipes int `yaml:"investor_daily_swipes"`

	// Constants used by factors that have no real data source yet.
	Placeholders struct {
		Geography  float64 `yaml:"geography"`
		Culture    float64 `yaml:"culture"`
		Reputation float64 `yaml:"reputation"`
		Timing     float64 `yaml:"timing"`
	} `yaml:"placeholders"`
}

// Default возвращает конфиг со значениями по умолчанию
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Database.Driver = "postgres"
	cfg.JWT.TTL = 60
	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Dealflow"
	cfg.Matching.StartupDailySwipes = 20
	cfg.Matching.InvestorDailySwipes = 50
	cfg.Matching.Placeholders.Geography = 0.8
	cfg.Matching.Placeholders.Culture = 0.7
	cfg.Matching.Placeholders.Reputation = 0.6
	cfg.Matching.Placeholders.Timing = 0.8
	return &cfg
}

// Load читает yaml (если файл есть) поверх дефолтов, затем применяет переменные окружения.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Matching.StartupDailySwipes < 1 || c.Matching.InvestorDailySwipes < 1 {
		return fmt.Errorf("daily swipe limits must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.LogLevel, "LOG_LEVEL")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTL, "JWT_TTL")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	setInt(&cfg.Matching.StartupDailySwipes, "STARTUP_DAILY_SWIPES")
	setInt(&cfg.Matching.InvestorDailySwipes, "INVESTOR_DAILY_SWIPES")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}

// LoadConfig: .env (опционально), затем yaml по пути path, CONFIG_PATH или config/config.yaml
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}
	return Load(path)
}
