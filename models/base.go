package models

import (
	"slices"
	"time"
)

// Base 所有业务记录共有的列
// 实现 store.Record 中与 ID、时间戳相关的部分，各模型自行实现
// MarkDeleted 和 Validate
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) RecordID() uint             { return b.ID }
func (b *Base) SetRecordID(id uint)        { b.ID = id }
func (b *Base) CreatedTime() time.Time     { return b.CreatedAt }
func (b *Base) SetCreatedTime(t time.Time) { b.CreatedAt = t }
func (b *Base) Touch(t time.Time)          { b.UpdatedAt = t }

// oneOf 判断值是否在枚举列表内
func oneOf(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}
