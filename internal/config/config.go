package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Routing    RoutingConfig
	Offline    OfflineConfig
	Navigation NavigationConfig
	Log        LogConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RoutingConfig - параметры удалённых OSRM-зеркал
type RoutingConfig struct {
	Mirrors        []string
	Profiles       []string // порядок перебора профилей
	RequestTimeout time.Duration
}

// OfflineConfig - параметры встроенного движка маршрутизации
type OfflineConfig struct {
	GraphPath string
}

// NavigationConfig - пороги навигации
type NavigationConfig struct {
	OffRouteThreshold float64 // метры
	ArrivalRadius     float64 // метры
	RouteCacheSize    int
	SessionTTL        time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Routing: RoutingConfig{
			Mirrors:        parseList(viper.GetString("ROUTING_MIRRORS")),
			Profiles:       parseList(viper.GetString("ROUTING_PROFILES")),
			RequestTimeout: time.Duration(viper.GetInt("ROUTING_REQUEST_TIMEOUT")) * time.Second,
		},
		Offline: OfflineConfig{
			GraphPath: viper.GetString("OFFLINE_GRAPH_PATH"),
		},
		Navigation: NavigationConfig{
			OffRouteThreshold: viper.GetFloat64("NAV_OFFROUTE_THRESHOLD"),
			ArrivalRadius:     viper.GetFloat64("NAV_ARRIVAL_RADIUS"),
			RouteCacheSize:    viper.GetInt("NAV_ROUTE_CACHE_SIZE"),
			SessionTTL:        time.Duration(viper.GetInt("NAV_SESSION_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if len(cfg.Routing.Mirrors) == 0 {
		cfg.Routing.Mirrors = []string{
			"https://routing.openstreetmap.de/routed-bike",
			"https://router.project-osrm.org",
		}
	}
	if len(cfg.Routing.Profiles) == 0 {
		// bike первым: его граф богаче и служит прокси для пеших путей
		cfg.Routing.Profiles = []string{"bike", "foot"}
	}
	if cfg.Routing.RequestTimeout == 0 {
		cfg.Routing.RequestTimeout = 15 * time.Second
	}
	if cfg.Navigation.OffRouteThreshold == 0 {
		cfg.Navigation.OffRouteThreshold = 30
	}
	if cfg.Navigation.ArrivalRadius == 0 {
		cfg.Navigation.ArrivalRadius = 30
	}
	if cfg.Navigation.RouteCacheSize == 0 {
		cfg.Navigation.RouteCacheSize = 10
	}
	if cfg.Navigation.SessionTTL == 0 {
		cfg.Navigation.SessionTTL = 24 * time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "navigation-position-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
