package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// memo 测试用的数据库记录类型
type memo struct {
	ID        uint
	Title     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (memo) TableName() string { return "memos" }

func (m *memo) RecordID() uint             { return m.ID }
func (m *memo) SetRecordID(id uint)        { m.ID = id }
func (m *memo) CreatedTime() time.Time     { return m.CreatedAt }
func (m *memo) SetCreatedTime(t time.Time) { m.CreatedAt = t }
func (m *memo) Touch(t time.Time)          { m.UpdatedAt = t }
func (m *memo) MarkDeleted()               { m.Status = StatusDeleted }

func (m *memo) Validate() error {
	if m.Title == "" {
		return NewValidationError("title", "标题不能为空")
	}
	return nil
}

func setupGormStore(t *testing.T) (*Gorm[memo, *memo], sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGorm[memo, *memo](func() *gorm.DB { return gormDB }), mock
}

func TestGormCreate(t *testing.T) {
	s, mock := setupGormStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `memos`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.Create(context.Background(), &memo{Title: "first"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCreateInvalidSkipsDB(t *testing.T) {
	s, mock := setupGormStore(t)

	// 校验失败时不会产生任何 SQL
	err := s.Create(context.Background(), &memo{})
	require.Error(t, err)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGetNotFound(t *testing.T) {
	s, mock := setupGormStore(t)

	mock.ExpectQuery("SELECT .* FROM `memos`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "created_at", "updated_at"}))

	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormList(t *testing.T) {
	s, mock := setupGormStore(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `memos` ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "created_at", "updated_at"}).
			AddRow(2, "second", "active", now, now).
			AddRow(1, "first", "active", now.Add(-time.Hour), now))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, uint(1), list[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
