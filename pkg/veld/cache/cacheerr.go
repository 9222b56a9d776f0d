package cache

import "fmt"

type VeldCacheErrorType int

const (
	CACHE_MISS VeldCacheErrorType = 1
	CACHE_NOT_SUPPORTED VeldCacheErrorType = 2
)

func (vcet VeldCacheErrorType) String() string {
	switch vcet {
	case CACHE_MISS: return "CACHE_MISS"
	case CACHE_NOT_SUPPORTED: return "CACHE_NOT_SUPPORTED"
	}
	return "UNKNOWN_ERROR"
}

type VeldCacheError struct {
	ErrorType VeldCacheErrorType
	ErrorMsg string
}

func IsVeldCacheError(e error) bool {
	_, ok := e.(*VeldCacheError)
	return ok
}

func (vce VeldCacheError) Error() string {
	return fmt.Sprintf("%s: %s", vce.ErrorType, vce.ErrorMsg)
}

func NewVeldCacheError(t VeldCacheErrorType, msg string) *VeldCacheError {
	return &VeldCacheError{
		ErrorType: t,
		ErrorMsg: msg,
	}
}

// shared sentinels. backends return these for the cases they name so
// call sites can compare with plain ==.
var ErrCacheMiss = NewVeldCacheError(CACHE_MISS, "cache miss")
var ErrCacheNotSupported = NewVeldCacheError(CACHE_NOT_SUPPORTED, "cache not supported")
