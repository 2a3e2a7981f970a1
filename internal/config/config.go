package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
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
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type CompanyConfig struct {
	Name              string `yaml:"name"`
	LegalName         string `yaml:"legal_name"`
	CertificatePrefix string `yaml:"certificate_prefix"`
}

// HolidayEntry mirrors domain.Holiday for the config file, with the date as
// a plain YYYY-MM-DD string.
type HolidayEntry struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
	Type string `yaml:"type"`
}

// LeaveConfig seeds the HR-tunable settings: per-type quotas and the
// company holiday calendar. Explicit named fields, not free-form maps.
type LeaveConfig struct {
	Quotas   domain.LeaveQuotas `yaml:"quotas"`
	Holidays []HolidayEntry     `yaml:"holidays"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Company  CompanyConfig  `yaml:"company"`
	Leave    LeaveConfig    `yaml:"leave"`
}

type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	CasbinModelPath  string
	CompanyName      string
	CompanyLegalName string
	CertPrefix       string
	Quotas           domain.LeaveQuotas
	Holidays         []domain.Holiday
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	path := env("LEAVE_CONFIG", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	holidays := make([]domain.Holiday, 0, len(configFile.Leave.Holidays))
	for i, h := range configFile.Leave.Holidays {
		day, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h.Date, err)
		}
		holidays = append(holidays, domain.Holiday{
			ID:   i + 1,
			Name: h.Name,
			Date: day,
			Type: h.Type,
		})
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              configFile.Database.DSN,
		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    configFile.Redis.Password,
		RedisDB:          configFile.Redis.DB,
		JWTSecret:        configFile.JWT.Secret,
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		OTP_TTL:          otpTTL,
		OTP_Length:       configFile.OTP.Length,
		OTP_MaxAttempts:  configFile.OTP.MaxAttempts,
		OTP_ResendWindow: resWnd,
		TwilioSID:        configFile.Twilio.AccountSID,
		TwilioToken:      configFile.Twilio.AuthToken,
		TwilioFrom:       configFile.Twilio.FromNumber,
		CasbinModelPath:  configFile.Casbin.ModelPath,
		CompanyName:      configFile.Company.Name,
		CompanyLegalName: configFile.Company.LegalName,
		CertPrefix:       configFile.Company.CertificatePrefix,
		Quotas:           configFile.Leave.Quotas,
		Holidays:         holidays,
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
