package store

import (
	"context"
	"sync"
	"time"
)

// Memory 内存存储实现
// 按插入顺序保存记录，用于单元测试和无数据库的演示模式
type Memory[T any, PT interface {
	Record
	*T
}] struct {
	mu     sync.Mutex
	nextID uint
	items  []PT
	now    func() time.Time
}

// NewMemory 创建内存存储
func NewMemory[T any, PT interface {
	Record
	*T
}]() *Memory[T, PT] {
	return &Memory[T, PT]{nextID: 1, now: time.Now}
}

// Create 校验并追加记录，分配自增 ID 和创建时间
func (m *Memory[T, PT]) Create(ctx context.Context, rec PT) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec.SetRecordID(m.nextID)
	rec.SetCreatedTime(now)
	rec.Touch(now)
	m.nextID++

	// 保存副本，避免调用方后续修改影响存储
	cp := *(*T)(rec)
	m.items = append(m.items, PT(&cp))
	return nil
}

// Get 按 ID 查找，返回副本
func (m *Memory[T, PT]) Get(ctx context.Context, id uint) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, _, err := m.find(id)
	if err != nil {
		return nil, err
	}
	cp := *(*T)(rec)
	return PT(&cp), nil
}

// Update 合并部分字段，ID 和创建时间保持不变
func (m *Memory[T, PT]) Update(ctx context.Context, id uint, apply func(PT)) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, idx, err := m.find(id)
	if err != nil {
		return nil, err
	}

	// 在副本上合并，校验通过后再替换，失败不影响已有记录
	cp := *(*T)(rec)
	next := PT(&cp)
	apply(next)
	next.SetRecordID(id)
	next.SetCreatedTime(rec.CreatedTime())
	next.Touch(m.now())
	if err := next.Validate(); err != nil {
		return nil, err
	}

	m.items[idx] = next
	out := *(*T)(next)
	return PT(&out), nil
}

// Delete 按策略删除：hard 移出列表，soft 置为 deleted 状态
func (m *Memory[T, PT]) Delete(ctx context.Context, id uint, mode DeleteMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, idx, err := m.find(id)
	if err != nil {
		return err
	}

	if mode == DeleteHard {
		m.items = append(m.items[:idx], m.items[idx+1:]...)
		return nil
	}
	rec.MarkDeleted()
	rec.Touch(m.now())
	return nil
}

// List 按插入顺序返回全部记录的副本（含软删除记录）
func (m *Memory[T, PT]) List(ctx context.Context) ([]PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]PT, 0, len(m.items))
	for _, rec := range m.items {
		cp := *(*T)(rec)
		out = append(out, PT(&cp))
	}
	return out, nil
}

// Count 当前记录数（含软删除）
func (m *Memory[T, PT]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory[T, PT]) find(id uint) (PT, int, error) {
	for i, rec := range m.items {
		if rec.RecordID() == id {
			return rec, i, nil
		}
	}
	return nil, -1, ErrNotFound
}
