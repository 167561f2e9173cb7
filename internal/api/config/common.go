package config

import "time"

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
	Trending          TrendingConfig    `mapstructure:"trending"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaViewConsumer KafkaViewConsumer `mapstructure:"kafka_view_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置，Address 为空则只输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
}

// TrendingConfig 趋势计算与快照缓存配置
type TrendingConfig struct {
	// UpdateInterval 快照过期间隔，对应 TRENDING_UPDATE_INTERVAL
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	// MinViewsForTrending 进入全局趋势榜的 24h 最低阅读量，对应 MIN_VIEWS_FOR_TRENDING
	MinViewsForTrending int64 `mapstructure:"min_views_for_trending"`
	// MinVelocityViews 加速榜对最近 1h 阅读量的噪声下限
	MinVelocityViews int64 `mapstructure:"min_velocity_views"`
	// RecencyHalfLife 时效权重的半衰期
	RecencyHalfLife time.Duration `mapstructure:"recency_half_life"`
	// TopK 各榜单返回条数
	TopK int `mapstructure:"top_k"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaViewConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
