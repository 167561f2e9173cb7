package wire

import (
	"Vinelytics/internal/api"
	"Vinelytics/internal/api/config"
	"Vinelytics/internal/api/handler"
	"Vinelytics/internal/job"
	"Vinelytics/internal/pkg/cron"
	"Vinelytics/internal/pkg/kafka"
	"Vinelytics/internal/repository"
	"Vinelytics/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	store := repository.NewRedisStore()

	contentRepo := repository.NewContentRepository(store)
	bucketRepo := repository.NewBucketRepository(store)
	creatorRepo := repository.NewCreatorRepository(store)
	hashtagRepo := repository.NewHashtagRepository(store)

	snapshotCache := service.NewSnapshotCache(cfg.Trending.UpdateInterval)

	ingestService := service.NewViewIngestService(contentRepo, bucketRepo, creatorRepo, hashtagRepo)
	trendingService := service.NewTrendingService(contentRepo, bucketRepo, creatorRepo, hashtagRepo, snapshotCache, cfg.Trending)

	handlers := &api.HandlersGroup{
		AnalyticsHandler: handler.NewAnalyticsHandler(ingestService, trendingService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewTrendingWarmJob(trendingService), cfg.Trending.UpdateInterval)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, ingestService)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
