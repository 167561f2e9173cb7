package service

import (
	"Vinelytics/internal/api/dto"
	"Vinelytics/internal/model"
	"Vinelytics/internal/pkg/util"
	"Vinelytics/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type ViewIngestService interface {
	// IngestView 受理一次观看事件：校验 -> 合并元数据 -> 写入各维度小时桶。
	// 元数据与已存值冲突不视为失败（首写生效，记录日志）
	IngestView(ctx context.Context, event *dto.ViewEventDTO) error
}

type viewIngestServiceImpl struct {
	contentRepo repository.ContentRepo
	bucketRepo  repository.BucketRepo
	creatorRepo repository.CreatorRepo
	hashtagRepo repository.HashtagRepo
	now         func() time.Time
}

func NewViewIngestService(
	contentRepo repository.ContentRepo,
	bucketRepo repository.BucketRepo,
	creatorRepo repository.CreatorRepo,
	hashtagRepo repository.HashtagRepo,
) ViewIngestService {
	return &viewIngestServiceImpl{
		contentRepo: contentRepo,
		bucketRepo:  bucketRepo,
		creatorRepo: creatorRepo,
		hashtagRepo: hashtagRepo,
		now:         time.Now,
	}
}

func (s *viewIngestServiceImpl) IngestView(ctx context.Context, event *dto.ViewEventDTO) error {
	id := event.EventID
	if !util.IsContentID(id) {
		return ErrInvalidContentID
	}

	meta := model.ContentMetadata{
		Title:    event.Title,
		Hashtags: util.NormalizeTags(event.Hashtags),
	}
	if event.CreatorPubkey != "" {
		if util.IsContentID(event.CreatorPubkey) {
			meta.CreatorPubkey = event.CreatorPubkey
		} else {
			log.DebugContext(ctx, "malformed creator pubkey dropped", "eventId", id)
		}
	}

	rec, created, err := s.contentRepo.UpsertMetadata(ctx, id, meta)
	if err != nil {
		log.ErrorContext(ctx, "upsert content metadata error", "eventId", id, "err", err)
		return ErrStoreUnavailable
	}

	now := s.now()
	if _, err = s.contentRepo.IncrementView(ctx, id, now); err != nil {
		log.ErrorContext(ctx, "increment content view error", "eventId", id, "err", err)
		return ErrStoreUnavailable
	}

	if err = s.bucketRepo.IncrBucket(ctx, repository.ContentSubject(id), now); err != nil {
		log.ErrorContext(ctx, "incr content bucket error", "eventId", id, "err", err)
		return ErrStoreUnavailable
	}

	// 话题与创作者维度按合并后的元数据计数（首写生效后保持稳定）
	for _, tag := range rec.Hashtags {
		if err = s.bucketRepo.IncrBucket(ctx, repository.HashtagSubject(tag), now); err != nil {
			log.ErrorContext(ctx, "incr hashtag bucket error", "tag", tag, "err", err)
			return ErrStoreUnavailable
		}
		if err = s.hashtagRepo.AddVideo(ctx, tag, id); err != nil {
			log.ErrorContext(ctx, "add hashtag video error", "tag", tag, "err", err)
			return ErrStoreUnavailable
		}
	}

	if rec.CreatorPubkey != "" {
		if err = s.bucketRepo.IncrBucket(ctx, repository.CreatorSubject(rec.CreatorPubkey), now); err != nil {
			log.ErrorContext(ctx, "incr creator bucket error", "eventId", id, "err", err)
			return ErrStoreUnavailable
		}
		if err = s.creatorRepo.ApplyView(ctx, rec.CreatorPubkey, created, now); err != nil {
			log.ErrorContext(ctx, "apply creator view error", "eventId", id, "err", err)
			return ErrStoreUnavailable
		}
	}

	return nil
}
