package api

import (
	"Vinelytics/internal/api/middleware"
	"Vinelytics/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	analytics := r.Group("/analytics")
	analytics.Use(middleware.IdentityMiddleware())
	{
		analytics.POST("/view", group.AnalyticsHandler.IngestView)
		analytics.GET("/health", group.AnalyticsHandler.Health)

		trendingGroup := analytics.Group("/trending")
		{
			// /videos 为历史路径，与 /vines 返回同一份榜单
			trendingGroup.GET("/videos", group.AnalyticsHandler.TrendingVines)
			trendingGroup.GET("/vines", group.AnalyticsHandler.TrendingVines)
			trendingGroup.GET("/viners", group.AnalyticsHandler.TrendingViners)
			trendingGroup.GET("/velocity", group.AnalyticsHandler.AscendingVines)
		}

		analytics.GET("/video/:event_id/stats", group.AnalyticsHandler.VideoStats)
		analytics.GET("/hashtag/:tag/trending", group.AnalyticsHandler.HashtagTrending)
		analytics.GET("/hashtags/trending", group.AnalyticsHandler.TrendingHashtags)

		// 预留的导出接口，尚未实现
		analytics.GET("/export", group.AnalyticsHandler.NotImplemented)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "Unroutable",
			"error":   "Unroutable",
			"data":    nil,
		})
	})

	return r
}
