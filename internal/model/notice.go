package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NoticeAlert   = "alert"
	NoticeMessage = "message"
)

// Notice is a team-visible notification tied to a task event. It is never
// edited after creation apart from users being added to IsRead.
type Notice struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"_id"`
	Text      string     `gorm:"not null" json:"text"`
	TaskID    *uuid.UUID `gorm:"type:uuid" json:"-"`
	NotiType  string     `gorm:"not null;default:alert" json:"notiType"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	Task   *Task  `gorm:"foreignKey:TaskID" json:"task"`
	Team   []User `gorm:"many2many:notice_team" json:"team"`
	IsRead []User `gorm:"many2many:notice_reads" json:"isRead"`
}

// NewNotice prepares an unread notice for every member of team.
func NewNotice(team []User, text string, taskID uuid.UUID) *Notice {
	return &Notice{
		ID:       uuid.New(),
		Text:     text,
		TaskID:   &taskID,
		NotiType: NoticeAlert,
		Team:     team,
		IsRead:   []User{},
	}
}

// ReadBy reports whether userID has acknowledged the notice.
func (n *Notice) ReadBy(userID uuid.UUID) bool {
	for _, u := range n.IsRead {
		if u.ID == userID {
			return true
		}
	}
	return false
}
