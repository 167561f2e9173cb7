package dto

// ViewEventDTO 观看事件上报体，eventId 必填，其余元数据随首次观看补全
type ViewEventDTO struct {
	EventID       string   `json:"eventId" binding:"required"`
	Source        string   `json:"source"`
	CreatorPubkey string   `json:"creatorPubkey"`
	Hashtags      []string `json:"hashtags"`
	Title         string   `json:"title"`
}

// ViewAcceptedDTO 观看事件受理结果
type ViewAcceptedDTO struct {
	EventID  string `json:"eventId"`
	Accepted bool   `json:"accepted"`
}
