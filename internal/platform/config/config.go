package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Stats    StatsConfig    `mapstructure:"stats"`
	LLM      LLMConfig      `mapstructure:"llm"`
	OCR      OCRConfig      `mapstructure:"ocr"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了持久化存储的配置
// Driver 支持 "sqlite" 和 "postgres" 两种取值
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig 定义了统计缓存所用Redis的配置
// Enabled 为 false 时服务完全绕过Redis，统计请求直接落库
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StatsConfig 定义了统计聚合的行为开关
type StatsConfig struct {
	// IncludeTeensBucket 控制年龄分桶是否包含"teens"档。
	// 关闭时沿用旧版行为：30岁以下全部计入"20s"。
	IncludeTeensBucket bool `mapstructure:"includeTeensBucket"`
	// CacheTTLSeconds 是聚合结果在Redis中的缓存时长（秒）。
	CacheTTLSeconds int `mapstructure:"cacheTTLSeconds"`
}

// LLMConfig 定义了文本生成服务的连接配置
// API密钥不放在配置文件中，通过环境变量 LLM_API_KEY 提供
type LLMConfig struct {
	BaseURL        string `mapstructure:"baseURL"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

// OCRConfig 定义了CLOVA OCR服务的连接配置
// 密钥通过环境变量 CLOVA_OCR_SECRET 提供
type OCRConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

// Timeout 将配置的秒数转换为Duration，未配置时返回默认30秒。
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout 将配置的秒数转换为Duration，未配置时返回默认30秒。
func (c OCRConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL 返回统计缓存时长，未配置时默认60秒。
func (c StatsConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// LLMAPIKey 返回文本生成服务的密钥，由 .env 或进程环境提供。
func LLMAPIKey() string {
	return os.Getenv("LLM_API_KEY")
}

// OCRSecret 返回CLOVA OCR的密钥，由 .env 或进程环境提供。
func OCRSecret() string {
	return os.Getenv("CLOVA_OCR_SECRET")
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config") // 文件名 (不带扩展名)
	v.SetConfigType("yaml")   // 文件类型

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 3. 设置默认值，保证配置文件缺项时服务仍可启动
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "fortune.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("stats.includeTeensBucket", true)
	v.SetDefault("stats.cacheTTLSeconds", 60)
	v.SetDefault("llm.baseURL", "https://api.openai.com")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeoutSeconds", 30)
	v.SetDefault("ocr.timeoutSeconds", 30)

	// 4. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 5. 读取配置文件（文件缺失时继续使用默认值和环境变量）
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
