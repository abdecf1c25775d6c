package config

import "time"

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// PathsConfig 数据目录与文件
type PathsConfig struct {
	SnapshotDir     string `mapstructure:"snapshot_dir" validate:"required"`
	SeriesDir       string `mapstructure:"series_dir" validate:"required"`
	HistoryDir      string `mapstructure:"history_dir" validate:"required"`
	RosterSource    string `mapstructure:"roster_source"`
	RosterFile      string `mapstructure:"roster_file" validate:"required"`
	RosterBackupDir string `mapstructure:"roster_backup_dir"`
	ForecastDir     string `mapstructure:"forecast_dir" validate:"required"`
	LogFile         string `mapstructure:"log_file"`
}

// ScheduleConfig 定时任务
type ScheduleConfig struct {
	Spec       string `mapstructure:"spec" validate:"required"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// ForecastConfig 随机游走预测参数
type ForecastConfig struct {
	Steps       int     `mapstructure:"steps" validate:"gt=0"`
	StrideHours float64 `mapstructure:"stride_hours" validate:"gt=0"`
	Noise       float64 `mapstructure:"noise" validate:"gte=0"`
	Order       int     `mapstructure:"order" validate:"gte=1"`
	WindowDays  int     `mapstructure:"window_days" validate:"gt=0"`
	Seed        uint64  `mapstructure:"seed"`
}

// ProfileConfig 头像查询接口
type ProfileConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BaseURL    string        `mapstructure:"base_url" validate:"required_if=Enabled true"`
	QueryParam string        `mapstructure:"query_param"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	NotFound   string        `mapstructure:"not_found"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	FaceTTL  time.Duration `mapstructure:"face_ttl"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// MinIOConfig MinIO配置，开启后将名册与预测结果同步到存储桶
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket" validate:"required_if=Enabled true"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}
