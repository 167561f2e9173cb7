package dto

import "time"

// TrendingVineDTO 全局趋势榜单条目
type TrendingVineDTO struct {
	EventID       string    `json:"eventId"`
	Title         string    `json:"title,omitempty"`
	CreatorPubkey string    `json:"creatorPubkey,omitempty"`
	Views24h      int64     `json:"views24h"`
	Score         float64   `json:"score"`
	LastUpdate    time.Time `json:"lastUpdate"`
}

type TrendingVinesDTO struct {
	Vines      []*TrendingVineDTO `json:"vines"`
	ComputedAt time.Time          `json:"computedAt"`
}

// TrendingVinerDTO 创作者榜单条目
type TrendingVinerDTO struct {
	Pubkey           string  `json:"pubkey"`
	TotalViews       int64   `json:"totalViews"`
	VideoCount       int64   `json:"videoCount"`
	AvgViewsPerVideo float64 `json:"avgViewsPerVideo"`
	Score            float64 `json:"score"`
}

type TrendingVinersDTO struct {
	Viners     []*TrendingVinerDTO `json:"viners"`
	ComputedAt time.Time           `json:"computedAt"`
}

// VelocityVineDTO 加速榜条目，velocity 为最近 1h 与过去 6h 均值的比值
type VelocityVineDTO struct {
	EventID    string    `json:"eventId"`
	Title      string    `json:"title,omitempty"`
	Views1h    int64     `json:"views1h"`
	Views6h    int64     `json:"views6h"`
	Velocity   float64   `json:"velocity"`
	LastUpdate time.Time `json:"lastUpdate"`
}

type VelocityVinesDTO struct {
	Vines      []*VelocityVineDTO `json:"vines"`
	ComputedAt time.Time          `json:"computedAt"`
}

// HashtagVideoDTO 话题下按窗口阅读量排序的视频
type HashtagVideoDTO struct {
	EventID string `json:"eventId"`
	Views   int64  `json:"views"`
}

type HashtagTrendingDTO struct {
	Hashtag    string             `json:"hashtag"`
	Timeframe  string             `json:"timeframe"`
	VideoCount int                `json:"videoCount"`
	TotalViews int64              `json:"totalViews"`
	TopVideos  []*HashtagVideoDTO `json:"topVideos"`
	ComputedAt time.Time          `json:"computedAt"`
}

// TrendingHashtagDTO 全局话题榜条目
type TrendingHashtagDTO struct {
	Hashtag string `json:"hashtag"`
	Views   int64  `json:"views"`
}

type TrendingHashtagsDTO struct {
	Timeframe  string                `json:"timeframe"`
	Hashtags   []*TrendingHashtagDTO `json:"hashtags"`
	ComputedAt time.Time             `json:"computedAt"`
}

// VideoStatsDTO 单个内容的时间窗口统计
type VideoStatsDTO struct {
	EventID       string    `json:"eventId"`
	Title         string    `json:"title,omitempty"`
	CreatorPubkey string    `json:"creatorPubkey,omitempty"`
	Hashtags      []string  `json:"hashtags,omitempty"`
	TotalViews    int64     `json:"totalViews"`
	Views1h       int64     `json:"views1h"`
	Views6h       int64     `json:"views6h"`
	Views24h      int64     `json:"views24h"`
	Views7d       int64     `json:"views7d"`
	Views30d      int64     `json:"views30d"`
	LastUpdate    time.Time `json:"lastUpdate"`
}
