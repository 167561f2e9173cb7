package repository

import (
	"Vinelytics/internal/pkg/consts"
	"Vinelytics/internal/pkg/util"
	"context"
	"strconv"
	"time"
)

// ContentSubject 内容维度的桶主体
func ContentSubject(id string) string {
	return "content:" + id
}

// HashtagSubject 话题维度的桶主体
func HashtagSubject(tag string) string {
	return "hashtag:" + tag
}

// CreatorSubject 创作者维度的桶主体
func CreatorSubject(pubkey string) string {
	return "creator:" + pubkey
}

type BucketRepo interface {
	// IncrBucket 对主体在指定小时的桶 +1，桶不存在则创建
	IncrBucket(ctx context.Context, subject string, hour time.Time) error
	// WindowTotal 统计窗口内的阅读量：当前整点桶加上之前 N-1 个小时桶之和。
	// 缺失或损坏的桶按 0 计，无历史返回 0 而非错误
	WindowTotal(ctx context.Context, subject string, window time.Duration, now time.Time) (int64, error)
}

type bucketRepoImpl struct {
	store KVStore
}

func NewBucketRepository(store KVStore) BucketRepo {
	return &bucketRepoImpl{store: store}
}

func bucketKey(subject string, hour time.Time) string {
	return consts.BucketKeyPrefix + subject + ":" + hour.Format(consts.BucketHourLayout)
}

// IncrBucket 读-增-写实现。底层存储没有原子计数，并发写同一个桶可能丢失
// 部分增量（只会少计）；分小时桶分散了热点，不引入分布式锁
func (r *bucketRepoImpl) IncrBucket(ctx context.Context, subject string, hour time.Time) error {
	key := bucketKey(subject, util.HourStart(hour))

	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}

	count := int64(0)
	if raw != "" {
		if n, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			count = n
		}
	}

	return r.store.Set(ctx, key, strconv.FormatInt(count+1, 10), consts.BucketRetention)
}

func (r *bucketRepoImpl) WindowTotal(ctx context.Context, subject string, window time.Duration, now time.Time) (int64, error) {
	hours := int(window / time.Hour)
	if hours < 1 {
		hours = 1
	}

	current := util.HourStart(now)
	keys := make([]string, 0, hours)
	for i := 0; i < hours; i++ {
		keys = append(keys, bucketKey(subject, current.Add(-time.Duration(i)*time.Hour)))
	}

	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, v := range values {
		if v == "" {
			continue
		}
		n, parseErr := strconv.ParseInt(v, 10, 64)
		if parseErr != nil {
			// 损坏的桶按 0 计
			continue
		}
		total += n
	}
	return total, nil
}
