package config

import (
	"fmt"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis     `yaml:"redis"`
	Session    Session   `yaml:"session"`
	Telemetry  Telemetry `yaml:"telemetry"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Session struct {
	// TTL - how long an abandoned session and its player survive in redis.
	TTL time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	// PersistInterval - how often a running realtime game is saved.
	PersistInterval time.Duration `yaml:"persist-interval" env:"SESSION_PERSIST_INTERVAL" env-default:"5s"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"TELEMETRY_ENABLED" env-default:"false"`
	ServiceName string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"arcade-backend"`
}

// Load - reads the file, environment variables override it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}
	return net.JoinHostPort(that.Host, that.Port)
}
