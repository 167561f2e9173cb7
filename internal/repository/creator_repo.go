package repository

import (
	"Vinelytics/internal/model"
	"Vinelytics/internal/pkg/consts"
	"context"
	"time"

	"github.com/goccy/go-json"
)

type CreatorRepo interface {
	// GetAggregate 创作者无记录时返回 (nil, nil)
	GetAggregate(ctx context.Context, pubkey string) (*model.CreatorAggregate, error)
	// ApplyView 为创作者累计一次观看，newVideo 表示该观看对应新发现的内容
	ApplyView(ctx context.Context, pubkey string, newVideo bool, at time.Time) error
	AllCreatorPubkeys(ctx context.Context) ([]string, error)
}

type creatorRepoImpl struct {
	store KVStore
}

func NewCreatorRepository(store KVStore) CreatorRepo {
	return &creatorRepoImpl{store: store}
}

func (r *creatorRepoImpl) GetAggregate(ctx context.Context, pubkey string) (*model.CreatorAggregate, error) {
	raw, err := r.store.Get(ctx, consts.CreatorKey+pubkey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var agg model.CreatorAggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *creatorRepoImpl) ApplyView(ctx context.Context, pubkey string, newVideo bool, at time.Time) error {
	agg, err := r.GetAggregate(ctx, pubkey)
	if err != nil {
		return err
	}

	created := false
	if agg == nil {
		agg = &model.CreatorAggregate{Pubkey: pubkey}
		created = true
	}

	agg.TotalViews++
	if newVideo {
		agg.VideoCount++
	}
	agg.LastUpdate = at

	raw, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, consts.CreatorKey+pubkey, string(raw), 0); err != nil {
		return err
	}

	if created {
		return r.store.SAdd(ctx, consts.CreatorIndexKey, pubkey)
	}
	return nil
}

func (r *creatorRepoImpl) AllCreatorPubkeys(ctx context.Context) ([]string, error) {
	return r.store.SMembers(ctx, consts.CreatorIndexKey)
}
