package repository

import (
	"Vinelytics/internal/model"
	"Vinelytics/internal/pkg/consts"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

type ContentRepo interface {
	// GetContent 内容不存在时返回 (nil, nil)，与 0 阅读量的已知内容区分
	GetContent(ctx context.Context, id string) (*model.ContentRecord, error)
	// UpsertMetadata 创建或合并内容元数据。已有字段不被覆盖（首写生效），
	// 返回合并后的记录以及本次是否新建
	UpsertMetadata(ctx context.Context, id string, meta model.ContentMetadata) (*model.ContentRecord, bool, error)
	// IncrementView 累计阅读量 +1 并刷新 lastUpdate，返回更新后的记录
	IncrementView(ctx context.Context, id string, at time.Time) (*model.ContentRecord, error)
	AllContentIDs(ctx context.Context) ([]string, error)
}

type contentRepoImpl struct {
	store KVStore
}

func NewContentRepository(store KVStore) ContentRepo {
	return &contentRepoImpl{store: store}
}

func (r *contentRepoImpl) GetContent(ctx context.Context, id string) (*model.ContentRecord, error) {
	raw, err := r.store.Get(ctx, consts.ContentKey+id)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var rec model.ContentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *contentRepoImpl) saveContent(ctx context.Context, rec *model.ContentRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, consts.ContentKey+rec.ID, string(raw), 0)
}

func (r *contentRepoImpl) UpsertMetadata(ctx context.Context, id string, meta model.ContentMetadata) (*model.ContentRecord, bool, error) {
	rec, err := r.GetContent(ctx, id)
	if err != nil {
		return nil, false, err
	}

	created := false
	if rec == nil {
		rec = &model.ContentRecord{ID: id}
		created = true
	}

	// 首写生效：已有字段保持不变，冲突的后写值丢弃
	if rec.Title == "" {
		rec.Title = meta.Title
	} else if meta.Title != "" && meta.Title != rec.Title {
		log.DebugContext(ctx, "content title conflict ignored", "id", id)
	}

	if len(rec.Hashtags) == 0 {
		rec.Hashtags = meta.Hashtags
	} else if len(meta.Hashtags) > 0 {
		log.DebugContext(ctx, "content hashtags conflict ignored", "id", id)
	}

	if rec.CreatorPubkey == "" {
		rec.CreatorPubkey = meta.CreatorPubkey
	} else if meta.CreatorPubkey != "" && meta.CreatorPubkey != rec.CreatorPubkey {
		log.DebugContext(ctx, "content creator conflict ignored", "id", id)
	}

	if err := r.saveContent(ctx, rec); err != nil {
		return nil, false, err
	}

	if created {
		if err := r.store.SAdd(ctx, consts.ContentIndexKey, id); err != nil {
			return nil, false, err
		}
	}

	return rec, created, nil
}

func (r *contentRepoImpl) IncrementView(ctx context.Context, id string, at time.Time) (*model.ContentRecord, error) {
	rec, err := r.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &model.ContentRecord{ID: id}
	}

	rec.ViewCount++
	rec.LastUpdate = at

	if err := r.saveContent(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *contentRepoImpl) AllContentIDs(ctx context.Context) ([]string, error) {
	return r.store.SMembers(ctx, consts.ContentIndexKey)
}
