package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
	NotImplemented      = 501
)

// 错误文本即对外返回的稳定 error code，客户端按此字段分支
var (
	ErrInvalidContentID = errors.New("InvalidContentId")
	ErrInvalidTimeframe = errors.New("InvalidTimeframe")
	ErrInvalidHashtag   = errors.New("InvalidHashtag")
	ErrContentNotFound  = errors.New("NotFound")
	ErrStoreUnavailable = errors.New("StoreUnavailable")
	ErrNoSnapshot       = errors.New("SnapshotUnavailable")
	ErrNotImplemented   = errors.New("NotImplemented")
)

var ErrorMap = map[error]int{
	ErrInvalidContentID: BadRequest,
	ErrInvalidTimeframe: BadRequest,
	ErrInvalidHashtag:   BadRequest,
	ErrContentNotFound:  NotFound,
	ErrStoreUnavailable: InternalServerError,
	ErrNoSnapshot:       InternalServerError,
	ErrNotImplemented:   NotImplemented,
}
