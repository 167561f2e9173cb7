package model

import (
	"time"
)

// ContentRecord 单个内容的元数据与累计计数，存储于 content:{id}
// ID 创建后不可变；ViewCount 只增不减（并发丢写导致的少计是接受的）
type ContentRecord struct {
	ID            string    `json:"id"`
	ViewCount     int64     `json:"viewCount"`
	LastUpdate    time.Time `json:"lastUpdate"`
	Hashtags      []string  `json:"hashtags,omitempty"`
	CreatorPubkey string    `json:"creatorPubkey,omitempty"`
	Title         string    `json:"title,omitempty"`
}

// ContentMetadata 随首次观看事件上报的内容元数据
type ContentMetadata struct {
	Title         string
	Hashtags      []string
	CreatorPubkey string
}
