package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Gorm 数据库存储实现，生产环境使用
// 通过 db 回调取当前连接，便于测试替换全局连接
type Gorm[T any, PT interface {
	Record
	*T
}] struct {
	db func() *gorm.DB
}

// NewGorm 创建数据库存储
func NewGorm[T any, PT interface {
	Record
	*T
}](db func() *gorm.DB) *Gorm[T, PT] {
	return &Gorm[T, PT]{db: db}
}

// Create 校验并写入记录，ID 和时间戳由数据库层分配
func (g *Gorm[T, PT]) Create(ctx context.Context, rec PT) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return g.db().WithContext(ctx).Create(rec).Error
}

// Get 按主键查找
func (g *Gorm[T, PT]) Get(ctx context.Context, id uint) (PT, error) {
	rec := PT(new(T))
	if err := g.db().WithContext(ctx).First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Update 合并部分字段后整体保存，ID 和创建时间保持不变
func (g *Gorm[T, PT]) Update(ctx context.Context, id uint, apply func(PT)) (PT, error) {
	rec, err := g.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	created := rec.CreatedTime()
	apply(rec)
	rec.SetRecordID(id)
	rec.SetCreatedTime(created)
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := g.db().WithContext(ctx).Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete 按策略删除：hard 删除行，soft 置为 deleted 状态
func (g *Gorm[T, PT]) Delete(ctx context.Context, id uint, mode DeleteMode) error {
	rec, err := g.Get(ctx, id)
	if err != nil {
		return err
	}

	if mode == DeleteHard {
		return g.db().WithContext(ctx).Delete(rec).Error
	}
	rec.MarkDeleted()
	rec.Touch(time.Now())
	return g.db().WithContext(ctx).Save(rec).Error
}

// List 按创建时间倒序返回全部记录（含软删除记录）
func (g *Gorm[T, PT]) List(ctx context.Context) ([]PT, error) {
	var items []T
	if err := g.db().WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]PT, 0, len(items))
	for i := range items {
		out = append(out, PT(&items[i]))
	}
	return out, nil
}
