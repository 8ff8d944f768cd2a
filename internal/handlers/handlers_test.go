package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eduboard/internal/models"
	"eduboard/internal/repository"
	"eduboard/internal/services"
)

type testApp struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	tasks  repository.TaskRepository
	scores repository.ScoreRepository

	userSvc  services.UserService
	groupSvc services.GroupService
	taskSvc  services.TaskService
	scoreSvc services.ScoreService
	statsSvc services.StatsService
	authSvc  *services.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Task{},
		&models.Score{},
	))

	app := &testApp{
		users:  repository.NewUserRepository(db),
		groups: repository.NewGroupRepository(db),
		tasks:  repository.NewTaskRepository(db),
		scores: repository.NewScoreRepository(db),
	}
	app.userSvc = services.NewUserService(app.users, app.groups, app.scores)
	app.groupSvc = services.NewGroupService(app.groups, app.users, app.tasks)
	app.taskSvc = services.NewTaskService(app.tasks, app.groups, app.scores, nil)
	app.scoreSvc = services.NewScoreService(app.scores, app.users, app.tasks, nil)
	app.statsSvc = services.NewStatsService(app.users, app.groups, app.tasks, app.scores)
	app.authSvc = services.NewAuthService(app.users, "test-secret", time.Hour)
	return app
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// asUser подменяет авторизацию: кладет пользователя в контекст напрямую
func asUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", u)
		c.Set("user_id", u.ID)
		c.Set("user_role", u.Role)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginHandler(t *testing.T) {
	app := newTestApp(t)
	_, err := app.userSvc.CreateUser(models.RoleTeacher, "teacher", "secret", "Teacher")
	require.NoError(t, err)

	router := gin.New()
	h := NewAuthHandler(app.authSvc)
	router.POST("/api/auth/login", h.Login)

	rec := performJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"username": "teacher",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "teacher", resp.Role)

	// Выданный токен проходит реальный AuthMiddleware
	me := gin.New()
	me.GET("/api/auth/me", AuthMiddleware(app.authSvc), h.Me)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	mrec := httptest.NewRecorder()
	me.ServeHTTP(mrec, req)
	require.Equal(t, http.StatusOK, mrec.Code)

	rec = performJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"username": "teacher",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudentStatsHandler(t *testing.T) {
	app := newTestApp(t)

	teacher, err := app.userSvc.CreateUser(models.RoleTeacher, "teacher", "pwd", "Teacher")
	require.NoError(t, err)
	student, err := app.userSvc.CreateUser(models.RoleStudent, "student", "pwd", "Student")
	require.NoError(t, err)

	task, err := app.taskSvc.CreateTask(teacher.ID, services.NewTask{
		Weekday: models.Monday, Title: "Listening", MaxScore: 40,
	})
	require.NoError(t, err)
	_, err = app.scoreSvc.SetScore(student.ID, task.ID, 36)
	require.NoError(t, err)

	router := gin.New()
	h := NewStatsHandler(app.statsSvc)
	router.GET("/api/stats/students/:id", asUser(teacher), h.StudentStats)

	rec := performJSON(t, router, http.MethodGet, "/api/stats/students/"+itoa(student.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stats struct {
			TotalScore   int     `json:"total_score"`
			TotalMax     int     `json:"total_max"`
			Percentage   float64 `json:"percentage"`
			OverallBand  float64 `json:"overall_band"`
			WeakestSkill string  `json:"weakest_skill"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 36, resp.Stats.TotalScore)
	require.Equal(t, 40, resp.Stats.TotalMax)
	require.Equal(t, 90.0, resp.Stats.Percentage)
	require.Equal(t, 9.0, resp.Stats.OverallBand)
}

func TestCompareGroupsHandler(t *testing.T) {
	app := newTestApp(t)

	teacher, err := app.userSvc.CreateUser(models.RoleTeacher, "teacher", "pwd", "Teacher")
	require.NoError(t, err)
	g1, err := app.groupSvc.CreateGroup("A", &teacher.ID)
	require.NoError(t, err)
	g2, err := app.groupSvc.CreateGroup("B", &teacher.ID)
	require.NoError(t, err)

	router := gin.New()
	h := NewStatsHandler(app.statsSvc)
	router.GET("/api/stats/compare", asUser(teacher), h.CompareGroups)

	rec := performJSON(t, router, http.MethodGet,
		"/api/stats/compare?groups="+itoa(g1.ID)+","+itoa(g2.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Одной группы мало для сравнения
	rec = performJSON(t, router, http.MethodGet, "/api/stats/compare?groups="+itoa(g1.ID), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	app := newTestApp(t)

	student, err := app.userSvc.CreateUser(models.RoleStudent, "student", "pwd", "Student")
	require.NoError(t, err)

	router := gin.New()
	h := NewUserHandler(app.userSvc, app.statsSvc)
	router.POST("/api/users", asUser(student), RequireRoles(models.RoleHeadTeacher, models.RoleSuperAdmin), h.CreateUser)

	rec := performJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"role": "student", "username": "x", "password": "y",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTaskBoardVisibility(t *testing.T) {
	app := newTestApp(t)

	teacher, err := app.userSvc.CreateUser(models.RoleTeacher, "teacher", "pwd", "Teacher")
	require.NoError(t, err)
	student, err := app.userSvc.CreateUser(models.RoleStudent, "student", "pwd", "Student")
	require.NoError(t, err)

	g, err := app.groupSvc.CreateGroup("A", &teacher.ID)
	require.NoError(t, err)
	other, err := app.groupSvc.CreateGroup("B", &teacher.ID)
	require.NoError(t, err)
	require.NoError(t, app.groupSvc.AddStudent(g.ID, student.ID))

	_, err = app.taskSvc.CreateTask(teacher.ID, services.NewTask{Weekday: models.Monday, Title: "common"})
	require.NoError(t, err)
	_, err = app.taskSvc.CreateTask(teacher.ID, services.NewTask{Weekday: models.Monday, Title: "mine", GroupID: &g.ID})
	require.NoError(t, err)
	_, err = app.taskSvc.CreateTask(teacher.ID, services.NewTask{Weekday: models.Monday, Title: "foreign", GroupID: &other.ID})
	require.NoError(t, err)

	router := gin.New()
	h := NewTaskHandler(app.taskSvc)
	router.GET("/api/tasks", asUser(student), h.Board)

	rec := performJSON(t, router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tasks map[string][]models.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks["Monday"], 2)
	for _, task := range resp.Tasks["Monday"] {
		require.NotEqual(t, "foreign", task.Title)
	}
}
