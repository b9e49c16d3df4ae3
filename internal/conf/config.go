package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Twitter   TwitterConfig   `mapstructure:"twitter"`
	StaticMap StaticMapConfig `mapstructure:"staticmap"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Images    ImagesConfig    `mapstructure:"images"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

// StorageConfig selects where map images are kept.
// Driver is "minio" or "file"; Dir is only used by the file driver.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
}

type TwitterConfig struct {
	APIHost     string        `mapstructure:"api_host"`
	APIKey      string        `mapstructure:"api_key"`
	APISecret   string        `mapstructure:"api_secret"`
	SearchLabel string        `mapstructure:"search_label"` // premium search environment label
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
}

type StaticMapConfig struct {
	APIHost     string        `mapstructure:"api_host"`
	APIKey      string        `mapstructure:"api_key"`
	Zoom        int           `mapstructure:"zoom"`
	Size        string        `mapstructure:"size"`
	MapType     string        `mapstructure:"map_type"`
	MarkerLabel string        `mapstructure:"marker_label"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
}

type CacheConfig struct {
	ResultTTL time.Duration `mapstructure:"result_ttl"`
}

type ImagesConfig struct {
	Workers int `mapstructure:"workers"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.dir", "mapcache")
	viper.SetDefault("cache.result_ttl", "15m")
	viper.SetDefault("images.workers", 8)
	viper.SetDefault("staticmap.zoom", 10)
	viper.SetDefault("staticmap.size", "600x300")
	viper.SetDefault("staticmap.map_type", "roadmap")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
