package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "ToDo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusInReview   TaskStatus = "InReview"
	TaskStatusDeclined   TaskStatus = "Declined"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists every status in board order.
var TaskStatuses = []TaskStatus{
	TaskStatusToDo,
	TaskStatusInProgress,
	TaskStatusInReview,
	TaskStatusDeclined,
	TaskStatusDone,
}

// Valid reports whether s is one of the five known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDeclined, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'ToDo';index" json:"status"`
	ProjectID   uuid.UUID  `gorm:"type:char(36);not null;index" json:"project_id"`
	AssigneeID  *uuid.UUID `gorm:"type:char(36);index" json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"-"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsAssignedTo reports whether the task is currently delegated to userID.
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
