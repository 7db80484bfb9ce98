package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	BcryptCost       int    `yaml:"bcrypt_cost"`
	SessionTTLDays   int    `yaml:"session_ttl_days"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
}

// VerificationConfig — все лимиты и TTL процесса подтверждения email.
// Значения по умолчанию см. applyDefaults.
type VerificationConfig struct {
	CodeLength         int `yaml:"code_length"`
	IDLength           int `yaml:"id_length"`
	EntryTTLSeconds    int `yaml:"entry_ttl_seconds"`
	CooldownTTLSeconds int `yaml:"cooldown_ttl_seconds"`
	DailyCap           int `yaml:"daily_cap"`
	DailyTTLSeconds    int `yaml:"daily_ttl_seconds"`
	AttemptCap         int `yaml:"attempt_cap"`
	AttemptTTLSeconds  int `yaml:"attempt_ttl_seconds"`
}

func (v VerificationConfig) EntryTTL() time.Duration {
	return time.Duration(v.EntryTTLSeconds) * time.Second
}

func (v VerificationConfig) CooldownTTL() time.Duration {
	return time.Duration(v.CooldownTTLSeconds) * time.Second
}

func (v VerificationConfig) DailyTTL() time.Duration {
	return time.Duration(v.DailyTTLSeconds) * time.Second
}

func (v VerificationConfig) AttemptTTL() time.Duration {
	return time.Duration(v.AttemptTTLSeconds) * time.Second
}

type FilesConfig struct {
	RootDir  string `yaml:"root_dir"`
	FontPath string `yaml:"font_path"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Redis RedisConfig `yaml:"redis"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth         AuthConfig         `yaml:"auth"`
	Verification VerificationConfig `yaml:"verification"`
	Files        FilesConfig        `yaml:"files"`
}

func LoadConfig() *Config {
	cfg, err := LoadConfigFrom("config/config.yaml")
	if err != nil {
		panic("Failed to load config.yaml: " + err.Error())
	}
	return cfg
}

func LoadConfigFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Files.RootDir == "" {
		c.Files.RootDir = "./files"
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Auth.SessionTTLDays == 0 {
		c.Auth.SessionTTLDays = 14
	}
	if c.Auth.AccessTTLMinutes == 0 {
		c.Auth.AccessTTLMinutes = 15
	}

	v := &c.Verification
	if v.CodeLength == 0 {
		v.CodeLength = 6
	}
	if v.IDLength == 0 {
		v.IDLength = 24
	}
	if v.EntryTTLSeconds == 0 {
		v.EntryTTLSeconds = 3600
	}
	if v.CooldownTTLSeconds == 0 {
		v.CooldownTTLSeconds = 600
	}
	if v.DailyCap == 0 {
		v.DailyCap = 4
	}
	if v.DailyTTLSeconds == 0 {
		v.DailyTTLSeconds = 86400
	}
	if v.AttemptCap == 0 {
		v.AttemptCap = 9
	}
	if v.AttemptTTLSeconds == 0 {
		v.AttemptTTLSeconds = 3600
	}
}
