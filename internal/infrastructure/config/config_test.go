package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "billing-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "billing", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 8*time.Hour, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "billing-backend", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 1<<20, cfg.HTTP.MaxHeaderBytes)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.Contains(t, cfg.HTTP.CORSAllowMethods, "PUT")
	assert.Empty(t, cfg.Auth.Users)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BILLING_APP_PORT", "9090")
	t.Setenv("BILLING_DATABASE_PASSWORD", "s3cr3t")
	t.Setenv("BILLING_JWT_ACCESS_TOKEN_EXPIRATION", "30m")
	t.Setenv("BILLING_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "s3cr3t", cfg.Database.Password)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults validate", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("provisioned users need email and hash", func(t *testing.T) {
		cfg := base()
		cfg.Auth.Users = []UserConfig{{Email: "ana@example.com.br"}}
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password_hash")
	})

	t.Run("production hardening", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "pw"
		cfg.Database.SSLMode = "require"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")

		cfg.JWT.Secret = "short"
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")

		cfg.JWT.Secret = strings.Repeat("x", 32)
		assert.NoError(t, cfg.validate())

		cfg.Database.SSLMode = "disable"
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")

		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "billing",
		Password: "p@ss w/special",
		DBName:   "billing",
		SSLMode:  "require",
	}

	dsn := d.DSN()

	assert.True(t, strings.HasPrefix(dsn, "postgres://"))
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss w/special")
}
