package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 ORBIT_DATABASE_HOST 覆盖 database.host
const EnvPrefix = "ORBIT"

// Config 全局配置结构体
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Market   MarketConfig   `mapstructure:"market"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
	// ShutdownTimeout 优雅退出等待时间（秒）
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// ShutdownDuration 返回优雅退出等待时间
func (a *AppConfig) ShutdownDuration() time.Duration {
	return time.Duration(a.ShutdownTimeout) * time.Second
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.DBName, d.SSLMode,
	)
	if d.Password != "" {
		dsn += " password=" + d.Password
	}
	return dsn
}

// MarketConfig 行情数据源（GeckoTerminal）配置
type MarketConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Network string `mapstructure:"network"`
}

// KafkaConfig Kafka配置，brokers 为空时不发布收藏事件
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

// Enabled 是否配置了 Kafka
func (k *KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Topic 返回指定用途的 topic，未配置时返回 fallback
func (k *KafkaConfig) Topic(name, fallback string) string {
	if t, ok := k.Topics[name]; ok && t != "" {
		return t
	}
	return fallback
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "orbittrack")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 4000)
	v.SetDefault("app.shutdown_timeout", 10)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("market.base_url", "https://api.geckoterminal.com/api/v2")
	v.SetDefault("market.network", "solana")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topics", map[string]string{"favorite_events": "orbittrack.favorite-events"})

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/orbittrack.log")
}

// Load 加载配置文件；文件不存在时仅使用默认值和环境变量
func Load(configPath string) (*Config, error) {
	// .env 可选，存在则先注入进程环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.App.Port <= 0 {
		return nil, fmt.Errorf("invalid app.port: %d", cfg.App.Port)
	}
	if cfg.Market.BaseURL == "" {
		return nil, errors.New("market.base_url is required")
	}
	cfg.Market.BaseURL = strings.TrimRight(cfg.Market.BaseURL, "/")

	return &cfg, nil
}
