// Package buildCFG assembles typed runtime configuration from the loaded
// config file and environment.
package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

type ServerConfig struct {
	Port string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) *ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return &ServerConfig{Port: port}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("db.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("db.master_dsn is required")
	}

	maxOpen := cfg.GetInt("db.max_open_conns")
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := cfg.GetInt("db.max_idle_conns")
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetimeSeconds := cfg.GetInt("db.conn_max_lifetime_seconds")
	if lifetimeSeconds <= 0 {
		lifetimeSeconds = 300
	}

	opts := &dbpg.Options{
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: time.Duration(lifetimeSeconds) * time.Second,
	}
	log.Debug().Int("max_open_conns", maxOpen).Int("max_idle_conns", maxIdle).Msg("DB pool configured")

	return masterDSN, nil, opts, nil
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (*RabbitConfig, error) {
	rc := &RabbitConfig{
		Url:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Url == "" {
		return nil, fmt.Errorf("rabbit.url is required")
	}
	if rc.Exchange == "" {
		rc.Exchange = "notifications"
		log.Warn().Msg("rabbit.exchange not set, defaulting to notifications")
	}
	if rc.Queue == "" {
		rc.Queue = "notifications.delivery"
		log.Warn().Msg("rabbit.queue not set, defaulting to notifications.delivery")
	}
	return rc, nil
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

func BuildAuthConfig(cfg *config.Config, log *zerolog.Logger) (*AuthConfig, error) {
	secret := cfg.GetString("auth.jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}

	ttlMinutes := cfg.GetInt("auth.token_ttl_minutes")
	if ttlMinutes <= 0 {
		ttlMinutes = 60
		log.Warn().Msg("auth.token_ttl_minutes not set, defaulting to 60")
	}
	return &AuthConfig{
		Secret:   secret,
		TokenTTL: time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

func BuildSMTPConfig(cfg *config.Config, log *zerolog.Logger) (*SMTPConfig, error) {
	sc := &SMTPConfig{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
	if sc.Host == "" || sc.From == "" {
		return nil, fmt.Errorf("smtp.host and smtp.from are required")
	}
	if sc.Port == "" {
		sc.Port = "587"
		log.Warn().Msg("smtp.port not set, defaulting to 587")
	}
	return sc, nil
}
