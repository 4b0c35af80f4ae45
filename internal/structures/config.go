package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" validate:"required|in:memory,file,sql,redis,blob"`

	// file backend
	FilePath string `yaml:"filePath"`
	Backups  int    `yaml:"backups"`

	// sql backend
	Driver string `yaml:"driver" validate:"in:,sqlite,postgres,mysql"`
	DSN    string `yaml:"dsn"`

	// redis backend
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	RedisKey      string `yaml:"redisKey"`

	// blob backend
	BlobEndpoint  string `yaml:"blobEndpoint"`
	BlobAccessKey string `yaml:"blobAccessKey"`
	BlobSecretKey string `yaml:"blobSecretKey"`
	BlobBucket    string `yaml:"blobBucket"`
	BlobObject    string `yaml:"blobObject"`
	BlobUseSSL    bool   `yaml:"blobUseSSL"`
}

type MonitorConfig struct {
	Interval     time.Duration `yaml:"interval" validate:"required|min:1"`
	ProbeTimeout time.Duration `yaml:"probeTimeout" validate:"required|min:1"`
	UserAgent    string        `yaml:"userAgent"`
}

type AuthConfig struct {
	AdminUser         string        `yaml:"adminUser" validate:"required"`
	AdminPasswordHash string        `yaml:"adminPasswordHash" validate:"required"`
	SessionSecret     string        `yaml:"sessionSecret" validate:"required"`
	ChallengeSecret   string        `yaml:"challengeSecret" validate:"required"`
	SessionTTL        time.Duration `yaml:"sessionTTL"`
	ChallengeTTL      time.Duration `yaml:"challengeTTL"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SeedSite struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Monitor   MonitorConfig `yaml:"monitor"`
	Auth      AuthConfig    `yaml:"auth"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	SeedSites []SeedSite    `yaml:"seedSites"`
}
