package model

import (
	"time"
)

// CreatorAggregate 创作者维度的增量聚合，存储于 creator:{pubkey}
type CreatorAggregate struct {
	Pubkey     string    `json:"pubkey"`
	TotalViews int64     `json:"totalViews"`
	VideoCount int64     `json:"videoCount"`
	LastUpdate time.Time `json:"lastUpdate"`
}
