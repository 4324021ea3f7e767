package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
	FrontendURL string `yaml:"frontend_url"`
	AdminURL    string `yaml:"admin_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
	UserTTL  string `yaml:"user_ttl"`  // vendor and customer tokens
	AdminTTL string `yaml:"admin_ttl"` // general and multi-vendor admin tokens
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type SecurityConfig struct {
	AdminRegistrationCode string `yaml:"admin_registration_code"`
	ResetTokenTTL         string `yaml:"reset_token_ttl"`
	ForgotPasswordLimit   int    `yaml:"forgot_password_limit"`
	ResetPasswordLimit    int    `yaml:"reset_password_limit"`
	RateLimitWindow       string `yaml:"rate_limit_window"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Security SecurityConfig `yaml:"security"`
}

type Config struct {
	Port        string
	GinMode     string
	Environment string
	FrontendURL string
	AdminURL    string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	UserTTL   time.Duration
	AdminTTL  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string

	AdminRegistrationCode string
	ResetTokenTTL         time.Duration
	ForgotPasswordLimit   int
	ResetPasswordLimit    int
	RateLimitWindow       time.Duration
}

// IsProduction reports whether error detail should be withheld from clients.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	userTTL, err := time.ParseDuration(configFile.JWT.UserTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT user TTL: %w", err)
	}

	adminTTL, err := time.ParseDuration(configFile.JWT.AdminTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT admin TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Security.ResetTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	rateWindow, err := time.ParseDuration(configFile.Security.RateLimitWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	return &Config{
		Port:        fmt.Sprintf("%d", configFile.App.Port),
		GinMode:     configFile.App.GinMode,
		Environment: env("APP_ENV", configFile.App.Environment),
		FrontendURL: configFile.App.FrontendURL,
		AdminURL:    configFile.App.AdminURL,

		DSN: env("DATABASE_DSN", configFile.Database.DSN),

		RedisAddr:     configFile.Redis.Addr,
		RedisPassword: configFile.Redis.Password,
		RedisDB:       configFile.Redis.DB,

		JWTSecret: env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer: configFile.JWT.Issuer,
		UserTTL:   userTTL,
		AdminTTL:  adminTTL,

		SMTPHost:     configFile.SMTP.Host,
		SMTPPort:     configFile.SMTP.Port,
		SMTPUsername: env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword: env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:     configFile.SMTP.From,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  configFile.Twilio.FromNumber,

		CasbinModelPath: configFile.Casbin.ModelPath,

		AdminRegistrationCode: env("ADMIN_REGISTRATION_CODE", configFile.Security.AdminRegistrationCode),
		ResetTokenTTL:         resetTTL,
		ForgotPasswordLimit:   configFile.Security.ForgotPasswordLimit,
		ResetPasswordLimit:    configFile.Security.ResetPasswordLimit,
		RateLimitWindow:       rateWindow,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
