package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eduboard/internal/models"
	"eduboard/internal/repository"
)

// newTestDB открывает чистую базу в памяти для одного теста.
// Именованная база с cache=shared: пул соединений gorm видит одни
// и те же таблицы, в отличие от простого ":memory:".
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// sqlite в памяти: одно соединение, иначе параллельные записи
	// упираются в блокировку таблиц
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Task{},
		&models.Score{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

type testEnv struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	tasks  repository.TaskRepository
	scores repository.ScoreRepository
}

func newTestEnv(t *testing.T) testEnv {
	db := newTestDB(t)
	return testEnv{
		users:  repository.NewUserRepository(db),
		groups: repository.NewGroupRepository(db),
		tasks:  repository.NewTaskRepository(db),
		scores: repository.NewScoreRepository(db),
	}
}

func (e testEnv) createUser(t *testing.T, role models.UserRole, username string) *models.User {
	t.Helper()
	u := &models.User{Role: role, Username: username, Password: "pwd", Name: username}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}
