package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	AdminID     uuid.UUID `gorm:"type:char(36);not null;index" json:"admin_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Admin   User            `gorm:"foreignKey:AdminID" json:"-"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"-"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether userID owns the project.
func (p *Project) IsAdmin(userID uuid.UUID) bool {
	return p.AdminID == userID
}
