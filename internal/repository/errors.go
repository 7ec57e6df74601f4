package repository

import "errors"

// 仓库层统一错误，由 handler 映射为 HTTP 状态码
var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry 违反唯一性约束（片单条目、置顶影片、用户注册）
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrPinLimit 置顶影片超出上限
	ErrPinLimit = errors.New("pin limit exceeded")
	// ErrConflict 乐观并发更新在重试耗尽后仍然失败
	ErrConflict = errors.New("concurrent update conflict")
)
