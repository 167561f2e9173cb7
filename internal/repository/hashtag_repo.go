package repository

import (
	"Vinelytics/internal/pkg/consts"
	"context"
)

type HashtagRepo interface {
	// AddVideo 记录话题与内容的关联，并把话题登记进全局索引
	AddVideo(ctx context.Context, tag string, contentID string) error
	VideosOf(ctx context.Context, tag string) ([]string, error)
	AllTags(ctx context.Context) ([]string, error)
}

type hashtagRepoImpl struct {
	store KVStore
}

func NewHashtagRepository(store KVStore) HashtagRepo {
	return &hashtagRepoImpl{store: store}
}

func (r *hashtagRepoImpl) AddVideo(ctx context.Context, tag string, contentID string) error {
	if err := r.store.SAdd(ctx, consts.HashtagVideosKey+tag, contentID); err != nil {
		return err
	}
	return r.store.SAdd(ctx, consts.HashtagIndexKey, tag)
}

func (r *hashtagRepoImpl) VideosOf(ctx context.Context, tag string) ([]string, error) {
	return r.store.SMembers(ctx, consts.HashtagVideosKey+tag)
}

func (r *hashtagRepoImpl) AllTags(ctx context.Context) ([]string, error) {
	return r.store.SMembers(ctx, consts.HashtagIndexKey)
}
