package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// note 测试用的最小记录类型
type note struct {
	ID        uint
	Title     string
	Amount    float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *note) RecordID() uint { return n.ID }
func (n *note) SetRecordID(id uint) { n.ID = id }
func (n *note) CreatedTime() time.Time { return n.CreatedAt }
func (n *note) SetCreatedTime(t time.Time) { n.CreatedAt = t }
func (n *note) Touch(t time.Time) { n.UpdatedAt = t }
func (n *note) MarkDeleted() { n.Status = StatusDeleted }

func (n *note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return NewValidationError("title", "标题不能为空")
	}
	if n.Amount < 0 {
		return NewValidationError("amount", "金额不能为负数")
	}
	if n.Status == "" {
		n.Status = "active"
	}
	return nil
}

func TestMemoryCreate(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()

	n := &note{Title: "first", Amount: 10}
	require.NoError(t, s.Create(ctx, n))
	assert.Equal(t, uint(1), n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, "active", n.Status)

	n2 := &note{Title: "second"}
	require.NoError(t, s.Create(ctx, n2))
	assert.Equal(t, uint(2), n2.ID)
	assert.Equal(t, 2, s.Count())
}

func TestMemoryCreateInvalid(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()

	// 校验失败的记录不会入库
	err := s.Create(ctx, &note{Title: "   "})
	require.Error(t, err)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)
	assert.Equal(t, 0, s.Count())

	err = s.Create(ctx, &note{Title: "x", Amount: -5})
	require.Error(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestMemoryGet(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &note{Title: "first", Amount: 10}))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	// 返回副本，修改不影响存储
	got.Title = "mutated"
	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", again.Title)

	_, err = s.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdate(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &note{Title: "first", Amount: 10}))

	created, err := s.Get(ctx, 1)
	require.NoError(t, err)

	got, err := s.Update(ctx, 1, func(n *note) {
		n.Amount = 25
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.Amount)
	assert.Equal(t, "first", got.Title)

	// ID 和创建时间不变
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestMemoryUpdateInvalidLeavesRecordUnchanged(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &note{Title: "first", Amount: 10}))

	// 非法更新被拒绝，原记录保持不变
	_, err := s.Update(ctx, 1, func(n *note) {
		n.Amount = -1
	})
	require.Error(t, err)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Amount)
	assert.Equal(t, 1, s.Count())
}

func TestMemoryUpdateNotFound(t *testing.T) {
	s := NewMemory[note, *note]()
	_, err := s.Update(context.Background(), 42, func(n *note) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteHard(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &note{Title: "first"}))
	require.NoError(t, s.Create(ctx, &note{Title: "second"}))

	require.NoError(t, s.Delete(ctx, 1, DeleteHard))
	assert.Equal(t, 1, s.Count())

	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// 已删除的 ID 不会被复用
	require.NoError(t, s.Create(ctx, &note{Title: "third"}))
	third, err := s.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "third", third.Title)
}

func TestMemoryDeleteSoft(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &note{Title: "first"}))

	require.NoError(t, s.Delete(ctx, 1, DeleteSoft))

	// 软删除的记录仍在列表中，状态为 deleted
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, got.Status)
	assert.Equal(t, 1, s.Count())

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusDeleted, list[0].Status)
}

func TestMemoryDeleteNotFound(t *testing.T) {
	s := NewMemory[note, *note]()
	err := s.Delete(context.Background(), 7, DeleteSoft)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListOrder(t *testing.T) {
	s := NewMemory[note, *note]()
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, s.Create(ctx, &note{Title: title}))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "c", list[2].Title)

	// 列表返回副本
	list[0].Title = "mutated"
	fresh, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", fresh[0].Title)
}
