// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fabiansimon/Frello/internal/database"
	"github.com/fabiansimon/Frello/internal/models"
)

// NewDB opens a migrated in-memory sqlite database that is closed when t ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: gets its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		Name:      "User " + email,
		Role:      "Engineer",
		Expertise: "Go, SQL",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject creates a project administered by admin, who is also made a member.
func CreateProject(t *testing.T, db *gorm.DB, title string, admin *models.User) *models.Project {
	t.Helper()

	project := &models.Project{Title: title, Description: title + " description", AdminID: admin.ID}
	require.NoError(t, db.Create(project).Error)
	AddMember(t, db, project, admin)
	return project
}

func AddMember(t *testing.T, db *gorm.DB, project *models.Project, user *models.User) {
	t.Helper()

	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}).Error)
}

func CreateTask(t *testing.T, db *gorm.DB, project *models.Project, title string, status models.TaskStatus, assignee *models.User) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:     title,
		Status:    status,
		ProjectID: project.ID,
	}
	if assignee != nil {
		id := assignee.ID
		task.AssigneeID = &id
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func CreateComment(t *testing.T, db *gorm.DB, task *models.Task, author *models.User, content string) *models.Comment {
	t.Helper()

	comment := &models.Comment{Content: content, TaskID: task.ID, UserID: author.ID}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func Count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
