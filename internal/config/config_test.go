package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:            "8472",
		Env:             "development",
		JWTSecret:       "a-development-secret-that-is-long-enough",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 336 * time.Hour,
		DBPassword:      "password",
	}
}

func TestValidateAcceptsDevelopmentDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRequiresPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing PORT")
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestValidateRejectsInvertedTTLs(t *testing.T) {
	cfg := validConfig()
	cfg.RefreshTokenTTL = time.Minute
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when refresh TTL is not longer than access TTL")
	}
}

func TestValidateProductionRejectsDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default secret in production")
	}
}

func TestValidateProductionRequiresStrongDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "0123456789abcdef0123456789abcdef-production"
	cfg.DBPassword = "password"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for weak DB password in production")
	}
}
