package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Cookie        CookieConfig        `mapstructure:"cookie"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Pagination    PaginationConfig    `mapstructure:"pagination"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string   `mapstructure:"name"`
	Version     string   `mapstructure:"version"`
	Mode        string   `mapstructure:"mode"`
	Port        int      `mapstructure:"port"`
	CorsOrigins []string `mapstructure:"cors_origins"`
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
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	StatsTTL int    `mapstructure:"stats_ttl"` // 秒，频道统计缓存
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StatsTTLDuration 返回频道统计缓存时长
func (r *RedisConfig) StatsTTLDuration() time.Duration {
	return time.Duration(r.StatsTTL) * time.Second
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	Bucket        string `mapstructure:"bucket"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// Topic 返回 topic 名称，未配置时返回 key 本身
func (k *KafkaConfig) Topic(key string) string {
	if t, ok := k.Topics[key]; ok && t != "" {
		return t
	}
	return key
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// VideoIndex 返回视频索引名
func (e *ElasticsearchConfig) VideoIndex() string {
	if name := e.Index["videos"]; name != "" {
		return name
	}
	return "videos"
}

// JWTConfig JWT配置
type JWTConfig struct {
	AccessSecret      string `mapstructure:"access_secret"`
	AccessExpireMins  int    `mapstructure:"access_expire_minutes"`
	RefreshSecret     string `mapstructure:"refresh_secret"`
	RefreshExpireDays int    `mapstructure:"refresh_expire_days"`
}

// AccessTTL 返回 access token 有效期
func (j *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpireMins) * time.Minute
}

// RefreshTTL 返回 refresh token 有效期
func (j *JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshExpireDays) * 24 * time.Hour
}

// CookieConfig 认证 Cookie 配置
type CookieConfig struct {
	Domain string `mapstructure:"domain"`
	Secure bool   `mapstructure:"secure"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxVideoMB int `mapstructure:"max_video_mb"`
	MaxImageMB int `mapstructure:"max_image_mb"`
}

// PaginationConfig 分页默认值
type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 全局配置实例
var globalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vidverse")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8000)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.stats_ttl", 60)
	v.SetDefault("minio.bucket", "vidverse-media")
	v.SetDefault("kafka.group_id", "vidverse-api")
	v.SetDefault("jwt.access_expire_minutes", 60)
	v.SetDefault("jwt.refresh_expire_days", 10)
	v.SetDefault("upload.max_video_mb", 500)
	v.SetDefault("upload.max_image_mb", 10)
	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Load 加载配置文件，环境变量 VIDVERSE_<SECTION>_<KEY> 可覆盖任意配置项
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("VIDVERSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("jwt secrets must be configured")
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Set 直接设置全局配置（测试使用）
func Set(cfg *Config) {
	globalConfig = cfg
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// GetJWT 获取JWT配置
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetPagination 获取分页配置
func GetPagination() *PaginationConfig {
	return &Get().Pagination
}
