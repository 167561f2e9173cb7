package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，部分关键项支持环境变量覆盖
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("trending.update_interval", "5m")
	viper.SetDefault("trending.min_views_for_trending", 10)
	viper.SetDefault("trending.min_velocity_views", 5)
	viper.SetDefault("trending.recency_half_life", "12h")
	viper.SetDefault("trending.top_k", 20)

	// 平台侧通过环境变量下发的运行参数
	_ = viper.BindEnv("trending.update_interval", "TRENDING_UPDATE_INTERVAL")
	_ = viper.BindEnv("trending.min_views_for_trending", "MIN_VIEWS_FOR_TRENDING")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
