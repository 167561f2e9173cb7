package consts

const (
	ContentKey       = "content:"
	ContentIndexKey  = "content:index"
	CreatorKey       = "creator:"
	CreatorIndexKey  = "creator:index"
	HashtagVideosKey = "hashtag:videos:"
	HashtagIndexKey  = "hashtag:index"
	BucketKeyPrefix  = "bucket:"
)
