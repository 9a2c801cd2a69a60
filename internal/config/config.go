package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// File is the absolute path of the config file read, empty when none was found.
	File string

	Server    ServerConfig
	Logger    LoggerConfig
	Provider  ProviderConfig
	Subtitle  SubtitleConfig
	Resolver  ResolverConfig
	LLM       LLMConfig
	Redis     RedisConfig
	Cache     CacheConfig
	SmartSort SmartSortConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Env    string `yaml:"env"`
	Level  string `yaml:"level"`
	Output string `yaml:"output"` // "stdout" or "stderr"
}

// ProviderConfig configures the yt-dlp media info lookup.
type ProviderConfig struct {
	Binary   string
	Timeout  time.Duration
	Language string
}

type SubtitleConfig struct {
	Timeout  time.Duration
	MaxBytes int64
}

// ResolverConfig bounds a whole resolution (info query plus subtitle download).
type ResolverConfig struct {
	Timeout time.Duration
}

// LLMConfig selects the generation backend. Source is one of "none", "ollama" or "openai".
type LLMConfig struct {
	Source      string
	ServerURL   string
	Model       string
	APIKey      string
	Timeout     time.Duration
	Temperature float64
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	MediaTTL time.Duration
}

type SmartSortConfig struct {
	APIURL  string
	Timeout time.Duration
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 120)

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("provider.binary", "yt-dlp")
	v.SetDefault("provider.timeout", 30)
	v.SetDefault("provider.language", "en")

	v.SetDefault("subtitle.timeout", 15)
	v.SetDefault("subtitle.max_bytes", 8<<20)

	v.SetDefault("resolver.timeout", 60)

	v.SetDefault("llm.source", "none")
	v.SetDefault("llm.model", "qwen3:0.6b")
	v.SetDefault("llm.timeout", 120)
	v.SetDefault("llm.temperature", 0.2)

	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.media_ttl", 6*60*60)

	v.SetDefault("smart_sort.timeout", 600)
}

func LoadConfig() (*Config, error) {
	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and environment still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := FromViper(v)
	if configFile := v.ConfigFileUsed(); configFile != "" {
		config.File, _ = filepath.Abs(configFile)
	}

	// Names kept from earlier deployments.
	if source := os.Getenv("LLM_SOURCE"); source != "" {
		config.LLM.Source = source
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if smartSort := os.Getenv("SMART_SORT_API"); smartSort != "" {
		config.SmartSort.APIURL = smartSort
	}
	if binary := os.Getenv("YTDLP_BINARY"); binary != "" {
		config.Provider.Binary = binary
	}

	return config, nil
}

// FromViper builds a Config from the keys set on v. Durations are read as seconds.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  seconds(v, "server.read_timeout"),
			WriteTimeout: seconds(v, "server.write_timeout"),
		},
		Logger: LoggerConfig{
			Env:    v.GetString("logger.env"),
			Level:  v.GetString("logger.level"),
			Output: v.GetString("logger.output"),
		},
		Provider: ProviderConfig{
			Binary:   v.GetString("provider.binary"),
			Timeout:  seconds(v, "provider.timeout"),
			Language: v.GetString("provider.language"),
		},
		Subtitle: SubtitleConfig{
			Timeout:  seconds(v, "subtitle.timeout"),
			MaxBytes: v.GetInt64("subtitle.max_bytes"),
		},
		Resolver: ResolverConfig{
			Timeout: seconds(v, "resolver.timeout"),
		},
		LLM: LLMConfig{
			Source:      v.GetString("llm.source"),
			ServerURL:   v.GetString("llm.server_url"),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			Timeout:     seconds(v, "llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			MediaTTL: seconds(v, "cache.media_ttl"),
		},
		SmartSort: SmartSortConfig{
			APIURL:  v.GetString("smart_sort.api_url"),
			Timeout: seconds(v, "smart_sort.timeout"),
		},
	}
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt64(key)) * time.Second
}
