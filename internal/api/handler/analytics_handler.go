package handler

import (
	"Vinelytics/internal/api/dto"
	"Vinelytics/internal/pkg/response"
	"Vinelytics/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	ingestSvc   service.ViewIngestService
	trendingSvc service.TrendingService
}

func NewAnalyticsHandler(ingestSvc service.ViewIngestService, trendingSvc service.TrendingService) *AnalyticsHandler {
	return &AnalyticsHandler{
		ingestSvc:   ingestSvc,
		trendingSvc: trendingSvc,
	}
}

// IngestView 上报一次观看事件
func (h *AnalyticsHandler) IngestView(c *gin.Context) {
	var req dto.ViewEventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, service.BadRequest, "InvalidRequest")
		return
	}

	if err := h.ingestSvc.IngestView(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ViewAcceptedDTO{EventID: req.EventID, Accepted: true})
}

// TrendingVines 全局趋势榜（/trending/videos 为历史路径，同一份数据）
func (h *AnalyticsHandler) TrendingVines(c *gin.Context) {
	data, err := h.trendingSvc.TrendingVines(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// TrendingViners 创作者榜
func (h *AnalyticsHandler) TrendingViners(c *gin.Context) {
	data, err := h.trendingSvc.TrendingViners(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// AscendingVines 加速榜
func (h *AnalyticsHandler) AscendingVines(c *gin.Context) {
	data, err := h.trendingSvc.AscendingVines(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// VideoStats 单内容时间窗口统计
func (h *AnalyticsHandler) VideoStats(c *gin.Context) {
	data, err := h.trendingSvc.VideoStats(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// HashtagTrending 单话题趋势，timeframe 取 1h|6h|24h|7d|30d，默认 24h
func (h *AnalyticsHandler) HashtagTrending(c *gin.Context) {
	data, err := h.trendingSvc.HashtagTrending(c.Request.Context(), c.Param("tag"), c.Query("timeframe"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// TrendingHashtags 全局话题榜
func (h *AnalyticsHandler) TrendingHashtags(c *gin.Context) {
	data, err := h.trendingSvc.TrendingHashtags(c.Request.Context(), c.Query("timeframe"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// Health 存活探针
func (h *AnalyticsHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"service": "vinelytics",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// NotImplemented 预留路由占位
func (h *AnalyticsHandler) NotImplemented(c *gin.Context) {
	response.Error(c, service.ErrNotImplemented)
}
