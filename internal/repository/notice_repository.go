package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskmanager/internal/model"
)

type NoticeRepositoryInterface interface {
	ListUnread(ctx context.Context, userID uuid.UUID) ([]model.Notice, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	MarkRead(ctx context.Context, userID, noticeID uuid.UUID) error
}

var _ NoticeRepositoryInterface = (*NoticeRepository)(nil)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// ListUnread returns the notices addressed to userID that the user has not
// read yet, newest first, with the originating task's title.
func (r *NoticeRepository) ListUnread(ctx context.Context, userID uuid.UUID) ([]model.Notice, error) {
	var notices []model.Notice
	err := r.db.WithContext(ctx).
		Preload("Task", selectColumns("id", "title")).
		Preload("Team", selectColumns("id")).
		Preload("IsRead", selectColumns("id")).
		Where("EXISTS (SELECT 1 FROM notice_team WHERE notice_team.notice_id = notices.id AND notice_team.user_id = ?)", userID).
		Where("NOT EXISTS (SELECT 1 FROM notice_reads WHERE notice_reads.notice_id = notices.id AND notice_reads.user_id = ?)", userID).
		Order("created_at DESC").
		Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// MarkAllRead acknowledges every notice addressed to userID
func (r *NoticeRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO notice_reads (notice_id, user_id)
		 SELECT notice_id, user_id FROM notice_team WHERE user_id = ?
		 ON CONFLICT DO NOTHING`,
		userID,
	).Error
}

// MarkRead acknowledges a single notice. Notices not addressed to userID
// are left untouched.
func (r *NoticeRepository) MarkRead(ctx context.Context, userID, noticeID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO notice_reads (notice_id, user_id)
		 SELECT notice_id, user_id FROM notice_team WHERE user_id = ? AND notice_id = ?
		 ON CONFLICT DO NOTHING`,
		userID, noticeID,
	).Error
}

// createNotice persists a notice and its audience inside tx
func createNotice(tx *gorm.DB, notice *model.Notice) error {
	if err := tx.Omit("Team", "IsRead", "Task").Create(notice).Error; err != nil {
		return err
	}
	members := make([]uuid.UUID, 0, len(notice.Team))
	for _, u := range notice.Team {
		members = append(members, u.ID)
	}
	return linkMembers(tx, "notice_team", "notice_id", notice.ID, members)
}
