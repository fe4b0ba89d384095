package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DeleteMode 删除策略：hard 物理删除，soft 置为 deleted 状态
type DeleteMode string

const (
	DeleteHard DeleteMode = "hard"
	DeleteSoft DeleteMode = "soft"
)

// StatusDeleted 软删除记录的终态
const StatusDeleted = "deleted"

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// ValidationError 字段校验失败，携带字段名便于前端定位
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Record 可被存储管理的记录
// ID 与创建时间由存储分配，更新操作不得修改
type Record interface {
	RecordID() uint
	SetRecordID(id uint)
	CreatedTime() time.Time
	SetCreatedTime(t time.Time)
	Touch(t time.Time)
	MarkDeleted()
	Validate() error
}

// Store 单一资源的记录存储
// Update 通过 apply 回调合并部分字段，存储负责保持 ID 和创建时间不变；
// Delete 按 mode 选择物理删除或软删除
type Store[T any, PT interface {
	Record
	*T
}] interface {
	Create(ctx context.Context, rec PT) error
	Get(ctx context.Context, id uint) (PT, error)
	Update(ctx context.Context, id uint, apply func(PT)) (PT, error)
	Delete(ctx context.Context, id uint, mode DeleteMode) error
	List(ctx context.Context) ([]PT, error)
}
