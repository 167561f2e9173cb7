package consts

import "time"

// BucketHourLayout 小时桶 key 的时间后缀格式（UTC，小时精度）
const BucketHourLayout = "2006010215"

// BucketRetention 桶的保留期限，超过后不再被任何窗口读取，由 TTL 自动回收
const BucketRetention = 30 * 24 * time.Hour

// Timeframes 查询支持的时间窗口
var Timeframes = map[string]time.Duration{
	"1h":  time.Hour,
	"6h":  6 * time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// DefaultTimeframe 未指定 timeframe 时的默认窗口
const DefaultTimeframe = "24h"

// 快照维度 key
const (
	SnapshotVines    = "vines"
	SnapshotViners   = "viners"
	SnapshotVelocity = "velocity"
	SnapshotHashtag  = "hashtag"
	SnapshotHashtags = "hashtags"
)

// HashtagTopVideos 单个话题趋势返回的 topVideos 数量
const HashtagTopVideos = 10
