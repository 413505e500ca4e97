package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"_id"`
	Name           string    `gorm:"not null" json:"name,omitempty"`
	Title          string    `json:"title,omitempty"`
	Role           string    `json:"role,omitempty"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"isAdmin,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"isActive,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt,omitzero"`

	// Tasks is the back-reference list every team member receives when a
	// task is created for them.
	Tasks []Task `gorm:"many2many:user_tasks" json:"tasks,omitempty"`
}

// UsersFromIDs builds reference-only users, enough to write join rows.
func UsersFromIDs(ids []uuid.UUID) []User {
	users := make([]User, 0, len(ids))
	for _, id := range ids {
		users = append(users, User{ID: id})
	}
	return users
}
