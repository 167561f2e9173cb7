package service

import (
	"Vinelytics/internal/api/config"
	"Vinelytics/internal/api/dto"
	"Vinelytics/internal/model"
	"Vinelytics/internal/pkg/consts"
	"Vinelytics/internal/pkg/util"
	"Vinelytics/internal/repository"
	"context"
	log "log/slog"
	"math"
	"sort"
	"time"
)

type TrendingService interface {
	// TrendingVines 全局趋势榜：score = views24h * 时效权重，低于噪声下限的内容不入榜
	TrendingVines(ctx context.Context) (*dto.TrendingVinesDTO, error)
	// TrendingViners 创作者榜：总量与单视频均量的组合得分
	TrendingViners(ctx context.Context) (*dto.TrendingVinersDTO, error)
	// AscendingVines 加速榜：velocity = views1h / max(1, views6h/6)
	AscendingVines(ctx context.Context) (*dto.VelocityVinesDTO, error)
	// HashtagTrending 单话题在指定窗口内的总量与视频排行
	HashtagTrending(ctx context.Context, tag string, timeframe string) (*dto.HashtagTrendingDTO, error)
	// TrendingHashtags 全局话题榜
	TrendingHashtags(ctx context.Context, timeframe string) (*dto.TrendingHashtagsDTO, error)
	// VideoStats 单内容的各窗口统计，无记录返回 NotFound
	VideoStats(ctx context.Context, id string) (*dto.VideoStatsDTO, error)
}

type trendingServiceImpl struct {
	contentRepo repository.ContentRepo
	bucketRepo  repository.BucketRepo
	creatorRepo repository.CreatorRepo
	hashtagRepo repository.HashtagRepo
	cache       *SnapshotCache
	cfg         config.TrendingConfig
	now         func() time.Time
}

func NewTrendingService(
	contentRepo repository.ContentRepo,
	bucketRepo repository.BucketRepo,
	creatorRepo repository.CreatorRepo,
	hashtagRepo repository.HashtagRepo,
	cache *SnapshotCache,
	cfg config.TrendingConfig,
) TrendingService {
	return &trendingServiceImpl{
		contentRepo: contentRepo,
		bucketRepo:  bucketRepo,
		creatorRepo: creatorRepo,
		hashtagRepo: hashtagRepo,
		cache:       cache,
		cfg:         cfg,
		now:         time.Now,
	}
}

// recencyWeight 指数半衰权重，下限 0.1，lastUpdate 越新权重越接近 1
func (s *trendingServiceImpl) recencyWeight(age time.Duration) float64 {
	if age <= 0 {
		return 1
	}
	halfLife := s.cfg.RecencyHalfLife
	if halfLife <= 0 {
		halfLife = 12 * time.Hour
	}
	w := math.Pow(0.5, age.Hours()/halfLife.Hours())
	if w < 0.1 {
		return 0.1
	}
	return w
}

func resolveTimeframe(timeframe string) (string, time.Duration, error) {
	if timeframe == "" {
		timeframe = consts.DefaultTimeframe
	}
	window, ok := consts.Timeframes[timeframe]
	if !ok {
		return "", 0, ErrInvalidTimeframe
	}
	return timeframe, window, nil
}

func (s *trendingServiceImpl) topK() int {
	if s.cfg.TopK <= 0 {
		return 20
	}
	return s.cfg.TopK
}

func (s *trendingServiceImpl) TrendingVines(ctx context.Context) (*dto.TrendingVinesDTO, error) {
	snap, err := s.cache.GetOrCompute(ctx, consts.SnapshotVines, s.computeTrendingVines)
	if err != nil {
		return nil, err
	}
	return snap.Data.(*dto.TrendingVinesDTO), nil
}

func (s *trendingServiceImpl) computeTrendingVines(ctx context.Context) (interface{}, error) {
	ids, err := s.contentRepo.AllContentIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list content ids error", "err", err)
		return nil, ErrStoreUnavailable
	}

	now := s.now()
	items := make([]*dto.TrendingVineDTO, 0, len(ids))
	for _, id := range ids {
		rec, recErr := s.contentRepo.GetContent(ctx, id)
		if recErr != nil || rec == nil {
			continue
		}

		// 桶读取失败按 0 计，榜单永远是尽力而为
		views24h, _ := s.bucketRepo.WindowTotal(ctx, repository.ContentSubject(id), 24*time.Hour, now)
		if views24h < s.cfg.MinViewsForTrending {
			continue
		}

		items = append(items, &dto.TrendingVineDTO{
			EventID:       id,
			Title:         rec.Title,
			CreatorPubkey: rec.CreatorPubkey,
			Views24h:      views24h,
			Score:         float64(views24h) * s.recencyWeight(now.Sub(rec.LastUpdate)),
			LastUpdate:    rec.LastUpdate,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if !items[i].LastUpdate.Equal(items[j].LastUpdate) {
			return items[i].LastUpdate.After(items[j].LastUpdate)
		}
		return items[i].EventID < items[j].EventID
	})
	if len(items) > s.topK() {
		items = items[:s.topK()]
	}

	return &dto.TrendingVinesDTO{Vines: items, ComputedAt: now}, nil
}

func (s *trendingServiceImpl) TrendingViners(ctx context.Context) (*dto.TrendingVinersDTO, error) {
	snap, err := s.cache.GetOrCompute(ctx, consts.SnapshotViners, s.computeTrendingViners)
	if err != nil {
		return nil, err
	}
	return snap.Data.(*dto.TrendingVinersDTO), nil
}

type rankedViner struct {
	agg   *model.CreatorAggregate
	score float64
}

func (s *trendingServiceImpl) computeTrendingViners(ctx context.Context) (interface{}, error) {
	pubkeys, err := s.creatorRepo.AllCreatorPubkeys(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list creators error", "err", err)
		return nil, ErrStoreUnavailable
	}

	now := s.now()
	ranked := make([]rankedViner, 0, len(pubkeys))
	for _, pk := range pubkeys {
		agg, aggErr := s.creatorRepo.GetAggregate(ctx, pk)
		if aggErr != nil || agg == nil {
			continue
		}

		videoCount := agg.VideoCount
		if videoCount < 1 {
			videoCount = 1
		}
		avg := float64(agg.TotalViews) / float64(videoCount)
		// 总量开方抑制纯刷量，均量线性奖励稳定输出
		ranked = append(ranked, rankedViner{
			agg:   agg,
			score: math.Sqrt(float64(agg.TotalViews)) * avg,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if !ranked[i].agg.LastUpdate.Equal(ranked[j].agg.LastUpdate) {
			return ranked[i].agg.LastUpdate.After(ranked[j].agg.LastUpdate)
		}
		return ranked[i].agg.Pubkey < ranked[j].agg.Pubkey
	})
	if len(ranked) > s.topK() {
		ranked = ranked[:s.topK()]
	}

	items := make([]*dto.TrendingVinerDTO, 0, len(ranked))
	for _, r := range ranked {
		videoCount := r.agg.VideoCount
		if videoCount < 1 {
			videoCount = 1
		}
		items = append(items, &dto.TrendingVinerDTO{
			Pubkey:           r.agg.Pubkey,
			TotalViews:       r.agg.TotalViews,
			VideoCount:       r.agg.VideoCount,
			AvgViewsPerVideo: float64(r.agg.TotalViews) / float64(videoCount),
			Score:            r.score,
		})
	}

	return &dto.TrendingVinersDTO{Viners: items, ComputedAt: now}, nil
}

func (s *trendingServiceImpl) AscendingVines(ctx context.Context) (*dto.VelocityVinesDTO, error) {
	snap, err := s.cache.GetOrCompute(ctx, consts.SnapshotVelocity, s.computeAscendingVines)
	if err != nil {
		return nil, err
	}
	return snap.Data.(*dto.VelocityVinesDTO), nil
}

func (s *trendingServiceImpl) computeAscendingVines(ctx context.Context) (interface{}, error) {
	ids, err := s.contentRepo.AllContentIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list content ids error", "err", err)
		return nil, ErrStoreUnavailable
	}

	now := s.now()
	items := make([]*dto.VelocityVineDTO, 0, len(ids))
	for _, id := range ids {
		rec, recErr := s.contentRepo.GetContent(ctx, id)
		if recErr != nil || rec == nil {
			continue
		}

		views1h, _ := s.bucketRepo.WindowTotal(ctx, repository.ContentSubject(id), time.Hour, now)
		if views1h < s.cfg.MinVelocityViews {
			// 近零分母下的比值噪声太大，直接排除
			continue
		}
		views6h, _ := s.bucketRepo.WindowTotal(ctx, repository.ContentSubject(id), 6*time.Hour, now)

		items = append(items, &dto.VelocityVineDTO{
			EventID:    id,
			Title:      rec.Title,
			Views1h:    views1h,
			Views6h:    views6h,
			Velocity:   float64(views1h) / math.Max(1, float64(views6h)/6),
			LastUpdate: rec.LastUpdate,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Velocity != items[j].Velocity {
			return items[i].Velocity > items[j].Velocity
		}
		if !items[i].LastUpdate.Equal(items[j].LastUpdate) {
			return items[i].LastUpdate.After(items[j].LastUpdate)
		}
		return items[i].EventID < items[j].EventID
	})
	if len(items) > s.topK() {
		items = items[:s.topK()]
	}

	return &dto.VelocityVinesDTO{Vines: items, ComputedAt: now}, nil
}

func (s *trendingServiceImpl) HashtagTrending(ctx context.Context, tag string, timeframe string) (*dto.HashtagTrendingDTO, error) {
	tag = util.NormalizeTag(tag)
	if tag == "" {
		return nil, ErrInvalidHashtag
	}
	timeframe, window, err := resolveTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	key := consts.SnapshotHashtag + "|" + tag + "|" + timeframe
	snap, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (interface{}, error) {
		return s.computeHashtagTrending(ctx, tag, timeframe, window)
	})
	if err != nil {
		return nil, err
	}
	return snap.Data.(*dto.HashtagTrendingDTO), nil
}

func (s *trendingServiceImpl) computeHashtagTrending(ctx context.Context, tag string, timeframe string, window time.Duration) (interface{}, error) {
	now := s.now()

	totalViews, err := s.bucketRepo.WindowTotal(ctx, repository.HashtagSubject(tag), window, now)
	if err != nil {
		log.ErrorContext(ctx, "hashtag window total error", "tag", tag, "err", err)
		return nil, ErrStoreUnavailable
	}

	ids, err := s.hashtagRepo.VideosOf(ctx, tag)
	if err != nil {
		log.ErrorContext(ctx, "hashtag videos error", "tag", tag, "err", err)
		return nil, ErrStoreUnavailable
	}

	videos := make([]*dto.HashtagVideoDTO, 0, len(ids))
	for _, id := range ids {
		views, _ := s.bucketRepo.WindowTotal(ctx, repository.ContentSubject(id), window, now)
		videos = append(videos, &dto.HashtagVideoDTO{EventID: id, Views: views})
	}

	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Views != videos[j].Views {
			return videos[i].Views > videos[j].Views
		}
		return videos[i].EventID < videos[j].EventID
	})
	if len(videos) > consts.HashtagTopVideos {
		videos = videos[:consts.HashtagTopVideos]
	}

	return &dto.HashtagTrendingDTO{
		Hashtag:    tag,
		Timeframe:  timeframe,
		VideoCount: len(ids),
		TotalViews: totalViews,
		TopVideos:  videos,
		ComputedAt: now,
	}, nil
}

func (s *trendingServiceImpl) TrendingHashtags(ctx context.Context, timeframe string) (*dto.TrendingHashtagsDTO, error) {
	timeframe, window, err := resolveTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	key := consts.SnapshotHashtags + "|" + timeframe
	snap, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (interface{}, error) {
		return s.computeTrendingHashtags(ctx, timeframe, window)
	})
	if err != nil {
		return nil, err
	}
	return snap.Data.(*dto.TrendingHashtagsDTO), nil
}

func (s *trendingServiceImpl) computeTrendingHashtags(ctx context.Context, timeframe string, window time.Duration) (interface{}, error) {
	tags, err := s.hashtagRepo.AllTags(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list hashtags error", "err", err)
		return nil, ErrStoreUnavailable
	}

	now := s.now()
	items := make([]*dto.TrendingHashtagDTO, 0, len(tags))
	for _, tag := range tags {
		views, _ := s.bucketRepo.WindowTotal(ctx, repository.HashtagSubject(tag), window, now)
		if views == 0 {
			continue
		}
		items = append(items, &dto.TrendingHashtagDTO{Hashtag: tag, Views: views})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Views != items[j].Views {
			return items[i].Views > items[j].Views
		}
		return items[i].Hashtag < items[j].Hashtag
	})
	if len(items) > s.topK() {
		items = items[:s.topK()]
	}

	return &dto.TrendingHashtagsDTO{Timeframe: timeframe, Hashtags: items, ComputedAt: now}, nil
}

func (s *trendingServiceImpl) VideoStats(ctx context.Context, id string) (*dto.VideoStatsDTO, error) {
	if !util.IsContentID(id) {
		return nil, ErrInvalidContentID
	}

	rec, err := s.contentRepo.GetContent(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "get content error", "eventId", id, "err", err)
		return nil, ErrStoreUnavailable
	}
	if rec == nil {
		return nil, ErrContentNotFound
	}

	now := s.now()
	subject := repository.ContentSubject(id)
	stats := &dto.VideoStatsDTO{
		EventID:       rec.ID,
		Title:         rec.Title,
		CreatorPubkey: rec.CreatorPubkey,
		Hashtags:      rec.Hashtags,
		TotalViews:    rec.ViewCount,
		LastUpdate:    rec.LastUpdate,
	}
	stats.Views1h, _ = s.bucketRepo.WindowTotal(ctx, subject, consts.Timeframes["1h"], now)
	stats.Views6h, _ = s.bucketRepo.WindowTotal(ctx, subject, consts.Timeframes["6h"], now)
	stats.Views24h, _ = s.bucketRepo.WindowTotal(ctx, subject, consts.Timeframes["24h"], now)
	stats.Views7d, _ = s.bucketRepo.WindowTotal(ctx, subject, consts.Timeframes["7d"], now)
	stats.Views30d, _ = s.bucketRepo.WindowTotal(ctx, subject, consts.Timeframes["30d"], now)

	return stats, nil
}
