package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode       uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir        string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
	MaxSizeMB  int    `yaml:"maxSizeMB" mapstructure:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups" mapstructure:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays" mapstructure:"maxAgeDays"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver" validate:"required|in:postgres,sqlite"`
	DSN          string `yaml:"dsn" mapstructure:"dsn"`
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	Name         string `yaml:"name" mapstructure:"name"`
	User         string `yaml:"user" mapstructure:"user"`
	Password     string `yaml:"password" mapstructure:"password"`
	SSLMode      string `yaml:"sslMode" mapstructure:"sslMode"`
	Path         string `yaml:"path" mapstructure:"path"`
	MaxOpenConns int    `yaml:"maxOpenConns" mapstructure:"maxOpenConns"`
	Migrate      bool   `yaml:"migrate" mapstructure:"migrate"`
}

type ObjectStoreConfig struct {
	Endpoint  string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required"`
	AccessKey string        `yaml:"accessKey" mapstructure:"accessKey"`
	SecretKey string        `yaml:"secretKey" mapstructure:"secretKey"`
	Region    string        `yaml:"region" mapstructure:"region" validate:"required"`
	Bucket    string        `yaml:"bucket" mapstructure:"bucket" validate:"required"`
	Secure    bool          `yaml:"secure" mapstructure:"secure"`
	URLExpiry time.Duration `yaml:"urlExpiry" mapstructure:"urlExpiry"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type CacheTTLConfig struct {
	Home    time.Duration `yaml:"home" mapstructure:"home"`
	Monitor time.Duration `yaml:"monitor" mapstructure:"monitor"`
	Scope   time.Duration `yaml:"scope" mapstructure:"scope"`
}

type CacheConfig struct {
	Enabled  bool           `yaml:"enabled" mapstructure:"enabled"`
	Backend  string         `yaml:"backend" mapstructure:"backend" validate:"in:freecache,lru,redis"`
	Size     int            `yaml:"size" mapstructure:"size"`
	Entries  int            `yaml:"entries" mapstructure:"entries"`
	Compress bool           `yaml:"compress" mapstructure:"compress"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	TTL      CacheTTLConfig `yaml:"ttl" mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	RefreshInterval time.Duration `yaml:"refreshInterval" mapstructure:"refreshInterval"`
}

type DashboardConfig struct {
	PageSize       int    `yaml:"pageSize" mapstructure:"pageSize" validate:"required|uint|min:1"`
	ScopesPageSize int    `yaml:"scopesPageSize" mapstructure:"scopesPageSize" validate:"required|uint|min:1"`
	ThumbnailURL   string `yaml:"thumbnailUrl" mapstructure:"thumbnailUrl"`
	PlayerFPS      int    `yaml:"playerFps" mapstructure:"playerFps"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer" mapstructure:"webServer"`
	Logger      LoggerConfig      `yaml:"logger" mapstructure:"logger"`
	Database    DatabaseConfig    `yaml:"database" mapstructure:"database"`
	ObjectStore ObjectStoreConfig `yaml:"objectStore" mapstructure:"objectStore"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Dashboard   DashboardConfig   `yaml:"dashboard" mapstructure:"dashboard"`
}
