package repository_test

import (
	"context"
	"testing"

	"taskmanager/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNoticeRepository_ListUnread(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	noticeRepo := repository.NewNoticeRepository(gormDB)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "notices" WHERE .*EXISTS \(SELECT 1 FROM notice_team .* AND .*NOT EXISTS \(SELECT 1 FROM notice_reads .* ORDER BY created_at DESC`).
		WithArgs(userID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text"}))

	// Act
	notices, err := noticeRepo.ListUnread(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, notices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepository_MarkAllRead(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	noticeRepo := repository.NewNoticeRepository(gormDB)

	userID := uuid.New()
	mock.ExpectExec(`INSERT INTO notice_reads \(notice_id, user_id\) SELECT notice_id, user_id FROM notice_team WHERE user_id = \$1 ON CONFLICT DO NOTHING`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	// Act
	err := noticeRepo.MarkAllRead(context.Background(), userID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepository_MarkRead(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	noticeRepo := repository.NewNoticeRepository(gormDB)

	userID, noticeID := uuid.New(), uuid.New()
	mock.ExpectExec(`INSERT INTO notice_reads .* WHERE user_id = \$1 AND notice_id = \$2 ON CONFLICT DO NOTHING`).
		WithArgs(userID, noticeID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Act
	err := noticeRepo.MarkRead(context.Background(), userID, noticeID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
