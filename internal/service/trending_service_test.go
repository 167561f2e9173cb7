package service

import (
	"Vinelytics/internal/api/config"
	"Vinelytics/internal/api/dto"
	"Vinelytics/internal/model"
	"Vinelytics/internal/repository"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trendNow = time.Date(2026, 8, 30, 12, 30, 0, 0, time.UTC)

func trendTestConfig() config.TrendingConfig {
	return config.TrendingConfig{
		UpdateInterval:      5 * time.Minute,
		MinViewsForTrending: 10,
		MinVelocityViews:    5,
		RecencyHalfLife:     12 * time.Hour,
		TopK:                20,
	}
}

type trendFixture struct {
	contentRepo repository.ContentRepo
	bucketRepo  repository.BucketRepo
	creatorRepo repository.CreatorRepo
	hashtagRepo repository.HashtagRepo
	cache       *SnapshotCache
	svc         TrendingService
	ingest      ViewIngestService
}

func newTrendFixture(cfg config.TrendingConfig) *trendFixture {
	store := repository.NewMemoryStore()
	f := &trendFixture{
		contentRepo: repository.NewContentRepository(store),
		bucketRepo:  repository.NewBucketRepository(store),
		creatorRepo: repository.NewCreatorRepository(store),
		hashtagRepo: repository.NewHashtagRepository(store),
	}

	f.cache = NewSnapshotCache(cfg.UpdateInterval)
	f.cache.now = func() time.Time { return trendNow }

	f.svc = NewTrendingService(f.contentRepo, f.bucketRepo, f.creatorRepo, f.hashtagRepo, f.cache, cfg)
	f.svc.(*trendingServiceImpl).now = func() time.Time { return trendNow }

	f.ingest = NewViewIngestService(f.contentRepo, f.bucketRepo, f.creatorRepo, f.hashtagRepo)
	f.ingest.(*viewIngestServiceImpl).now = func() time.Time { return trendNow }

	return f
}

// seedContent 直接写入内容记录与小时桶，offset 为距当前时刻的回溯量
func (f *trendFixture) seedContent(t *testing.T, id string, lastUpdate time.Time, viewsAt map[time.Duration]int) {
	t.Helper()
	ctx := context.Background()

	_, _, err := f.contentRepo.UpsertMetadata(ctx, id, model.ContentMetadata{})
	require.NoError(t, err)
	_, err = f.contentRepo.IncrementView(ctx, id, lastUpdate)
	require.NoError(t, err)

	for offset, count := range viewsAt {
		for i := 0; i < count; i++ {
			require.NoError(t, f.bucketRepo.IncrBucket(ctx, repository.ContentSubject(id), trendNow.Add(-offset)))
		}
	}
}

func TestHashtagTrendingSingleVideo(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())
	id := strings.Repeat("a", 64)

	for i := 0; i < 10; i++ {
		require.NoError(t, f.ingest.IngestView(ctx, &dto.ViewEventDTO{EventID: id, Hashtags: []string{"#Bitcoin"}}))
	}

	got, err := f.svc.HashtagTrending(ctx, "bitcoin", "1h")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", got.Hashtag)
	assert.Equal(t, "1h", got.Timeframe)
	assert.Equal(t, 1, got.VideoCount)
	assert.Equal(t, int64(10), got.TotalViews)
	require.Len(t, got.TopVideos, 1)
	assert.Equal(t, id, got.TopVideos[0].EventID)
	assert.Equal(t, int64(10), got.TopVideos[0].Views)

	// 带 # 前缀与大小写归一到同一话题
	same, err := f.svc.HashtagTrending(ctx, "#Bitcoin", "1h")
	require.NoError(t, err)
	assert.Equal(t, got.Hashtag, same.Hashtag)
	assert.Equal(t, got.TotalViews, same.TotalViews)
}

func TestTrendingVinesNoiseFloor(t *testing.T) {
	f := newTrendFixture(trendTestConfig())
	hot := strings.Repeat("1", 64)
	cold := strings.Repeat("2", 64)

	f.seedContent(t, hot, trendNow, map[time.Duration]int{0: 15})
	f.seedContent(t, cold, trendNow, map[time.Duration]int{0: 3})

	got, err := f.svc.TrendingVines(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Vines, 1)
	assert.Equal(t, hot, got.Vines[0].EventID)
	assert.Equal(t, int64(15), got.Vines[0].Views24h)
	// lastUpdate 为当前时刻，时效权重为 1，得分等于 24h 阅读量
	assert.InDelta(t, 15, got.Vines[0].Score, 1e-9)
}

func TestTrendingVinesTieBreaks(t *testing.T) {
	f := newTrendFixture(trendTestConfig())
	idA := strings.Repeat("1", 64)
	idB := strings.Repeat("2", 64)
	idC := strings.Repeat("3", 64)

	// 三条内容 24h 阅读量相同，lastUpdate 都早到触发权重下限，得分完全相等。
	// A 与 C 的 lastUpdate 相同，B 更早
	f.seedContent(t, idA, trendNow.Add(-60*time.Hour), map[time.Duration]int{0: 12})
	f.seedContent(t, idB, trendNow.Add(-70*time.Hour), map[time.Duration]int{0: 12})
	f.seedContent(t, idC, trendNow.Add(-60*time.Hour), map[time.Duration]int{0: 12})

	got, err := f.svc.TrendingVines(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Vines, 3)
	assert.Equal(t, idA, got.Vines[0].EventID)
	assert.Equal(t, idC, got.Vines[1].EventID)
	assert.Equal(t, idB, got.Vines[2].EventID)
	assert.InDelta(t, got.Vines[0].Score, got.Vines[2].Score, 1e-9)
}

func TestAscendingVinesVelocity(t *testing.T) {
	f := newTrendFixture(trendTestConfig())
	burst := strings.Repeat("b", 64)
	steady := strings.Repeat("c", 64)
	quiet := strings.Repeat("d", 64)

	// burst: 1h 内 20 次，6h 共 24 次 -> velocity 20 / (24/6) = 5
	f.seedContent(t, burst, trendNow, map[time.Duration]int{
		0:             20,
		2 * time.Hour: 1,
		3 * time.Hour: 1,
		4 * time.Hour: 1,
		5 * time.Hour: 1,
	})
	// steady: 1h 内 5 次，6h 共 6 次 -> velocity 5 / max(1, 1) = 5，lastUpdate 更早
	f.seedContent(t, steady, trendNow.Add(-time.Minute), map[time.Duration]int{
		0:             5,
		3 * time.Hour: 1,
	})
	// quiet: 低于 1h 噪声下限，不入榜
	f.seedContent(t, quiet, trendNow, map[time.Duration]int{0: 2})

	got, err := f.svc.AscendingVines(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Vines, 2)

	assert.Equal(t, burst, got.Vines[0].EventID)
	assert.Equal(t, int64(20), got.Vines[0].Views1h)
	assert.Equal(t, int64(24), got.Vines[0].Views6h)
	assert.InDelta(t, 5, got.Vines[0].Velocity, 1e-9)

	assert.Equal(t, steady, got.Vines[1].EventID)
	assert.InDelta(t, 5, got.Vines[1].Velocity, 1e-9)
}

func TestTrendingViners(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())
	prolific := strings.Repeat("e", 64)
	niche := strings.Repeat("f", 64)

	// prolific: 100 次观看分布在 4 条视频 -> sqrt(100) * 25 = 250
	for i := 0; i < 100; i++ {
		require.NoError(t, f.creatorRepo.ApplyView(ctx, prolific, i < 4, trendNow))
	}
	// niche: 9 次观看 1 条视频 -> sqrt(9) * 9 = 27
	for i := 0; i < 9; i++ {
		require.NoError(t, f.creatorRepo.ApplyView(ctx, niche, i == 0, trendNow))
	}

	got, err := f.svc.TrendingViners(ctx)
	require.NoError(t, err)
	require.Len(t, got.Viners, 2)

	assert.Equal(t, prolific, got.Viners[0].Pubkey)
	assert.Equal(t, int64(100), got.Viners[0].TotalViews)
	assert.Equal(t, int64(4), got.Viners[0].VideoCount)
	assert.InDelta(t, 25, got.Viners[0].AvgViewsPerVideo, 1e-9)
	assert.InDelta(t, 250, got.Viners[0].Score, 1e-9)

	assert.Equal(t, niche, got.Viners[1].Pubkey)
	assert.InDelta(t, 27, got.Viners[1].Score, 1e-9)
}

func TestTrendingHashtags(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())
	vidA := strings.Repeat("1", 64)
	vidB := strings.Repeat("2", 64)

	require.NoError(t, f.hashtagRepo.AddVideo(ctx, "bitcoin", vidA))
	require.NoError(t, f.hashtagRepo.AddVideo(ctx, "nostr", vidB))
	require.NoError(t, f.hashtagRepo.AddVideo(ctx, "silent", vidB))

	for i := 0; i < 7; i++ {
		require.NoError(t, f.bucketRepo.IncrBucket(ctx, repository.HashtagSubject("bitcoin"), trendNow))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, f.bucketRepo.IncrBucket(ctx, repository.HashtagSubject("nostr"), trendNow))
	}

	got, err := f.svc.TrendingHashtags(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "24h", got.Timeframe)
	// 窗口内无阅读的话题不入榜
	require.Len(t, got.Hashtags, 2)
	assert.Equal(t, "bitcoin", got.Hashtags[0].Hashtag)
	assert.Equal(t, int64(7), got.Hashtags[0].Views)
	assert.Equal(t, "nostr", got.Hashtags[1].Hashtag)
}

func TestVideoStatsWindows(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())
	id := strings.Repeat("a", 64)

	f.seedContent(t, id, trendNow, map[time.Duration]int{
		0:              3,
		time.Hour:      2,
		30 * time.Hour: 1,
	})

	got, err := f.svc.VideoStats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.EventID)
	assert.Equal(t, int64(3), got.Views1h)
	assert.Equal(t, int64(5), got.Views6h)
	assert.Equal(t, int64(5), got.Views24h)
	assert.Equal(t, int64(6), got.Views7d)
	assert.Equal(t, int64(6), got.Views30d)
}

func TestVideoStatsErrors(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())

	_, err := f.svc.VideoStats(ctx, "xyz")
	assert.ErrorIs(t, err, ErrInvalidContentID)

	_, err = f.svc.VideoStats(ctx, strings.Repeat("9", 64))
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestTrendingParamValidation(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())

	_, err := f.svc.HashtagTrending(ctx, "bitcoin", "2h")
	assert.ErrorIs(t, err, ErrInvalidTimeframe)

	_, err = f.svc.HashtagTrending(ctx, "  #  ", "1h")
	assert.ErrorIs(t, err, ErrInvalidHashtag)

	_, err = f.svc.TrendingHashtags(ctx, "yesterday")
	assert.ErrorIs(t, err, ErrInvalidTimeframe)
}

func TestTrendingVinesSnapshotReuse(t *testing.T) {
	ctx := context.Background()
	f := newTrendFixture(trendTestConfig())
	f.seedContent(t, strings.Repeat("a", 64), trendNow, map[time.Duration]int{0: 15})

	first, err := f.svc.TrendingVines(ctx)
	require.NoError(t, err)

	// 间隔内新到的阅读不影响已缓存的快照
	f.seedContent(t, strings.Repeat("b", 64), trendNow, map[time.Duration]int{0: 30})

	second, err := f.svc.TrendingVines(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.True(t, first.ComputedAt.Equal(second.ComputedAt))
}
