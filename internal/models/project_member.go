package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMember is the membership join row between projects and users.
// The project admin always has one.
type ProjectMember struct {
	ProjectID uuid.UUID `gorm:"type:char(36);primaryKey" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey;index" json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
