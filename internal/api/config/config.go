package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"Upstat/internal/pkg/util"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// ScheduleParser 六段式 cron 表达式（秒 分 时 日 月 周），也接受 @every 等描述符
var ScheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	cfg, err := load(v)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// LoadFile 读取指定路径的配置文件，主要用于工具命令和测试
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("upstat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := util.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := ScheduleParser.Parse(cfg.Schedule.Spec); err != nil {
		return nil, fmt.Errorf("invalid config: schedule.spec %q: %w", cfg.Schedule.Spec, err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("paths.snapshot_dir", "./data/Apic")
	v.SetDefault("paths.series_dir", "./data/A")
	v.SetDefault("paths.history_dir", "./data/HistoricalRecords")
	v.SetDefault("paths.roster_source", "./data/Apic/a.json")
	v.SetDefault("paths.roster_file", "./data/a.json")
	v.SetDefault("paths.roster_backup_dir", "./data/backup")
	v.SetDefault("paths.forecast_dir", "./data/P")

	v.SetDefault("schedule.spec", "@every 1h")
	v.SetDefault("schedule.run_on_start", true)

	// 每天 24/3 个点，预测两周
	v.SetDefault("forecast.steps", 24/3*7*2)
	v.SetDefault("forecast.stride_hours", 3)
	v.SetDefault("forecast.noise", 0.5)
	v.SetDefault("forecast.order", 1)
	v.SetDefault("forecast.window_days", 30)

	v.SetDefault("profile.enabled", true)
	v.SetDefault("profile.base_url", "https://api.bilibili.com/x/space/acc/info")
	v.SetDefault("profile.query_param", "mid")
	v.SetDefault("profile.timeout", 10*time.Second)
	v.SetDefault("profile.not_found", "Not Found")

	v.SetDefault("redis.pool_size", 4)
	v.SetDefault("redis.face_ttl", 24*time.Hour)
	v.SetDefault("redis.lock_ttl", 2*time.Hour)
}
