package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"eduboard/internal/config"
	"eduboard/internal/handlers"
	"eduboard/internal/models"
	"eduboard/internal/repository"
	"eduboard/internal/services"
	"eduboard/pkg/database"
	"eduboard/pkg/snapshot"
	"eduboard/pkg/telegram"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Создаем администратора по умолчанию
	if err := db.CreateDefaultAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Инициализируем хранилище снапшотов
	snapshotStore, err := snapshot.NewStore(cfg.SnapshotPath, cfg.MaxSnapshotSize)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot store: %v", err)
	}

	// Инициализируем Telegram бота (необязательный канал уведомлений)
	telegramBot, err := telegram.NewBot(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db.DB)
	groupRepo := repository.NewGroupRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)
	scoreRepo := repository.NewScoreRepository(db.DB)

	// Создаем сервисы
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	userService := services.NewUserService(userRepo, groupRepo, scoreRepo)
	groupService := services.NewGroupService(groupRepo, userRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, groupRepo, scoreRepo, telegramBot)
	scoreService := services.NewScoreService(scoreRepo, userRepo, taskRepo, telegramBot)
	statsService := services.NewStatsService(userRepo, groupRepo, taskRepo, scoreRepo)
	snapshotService := services.NewSnapshotService(snapshotStore, userRepo, groupRepo, taskRepo, scoreRepo)

	// Создаем обработчики
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, statsService)
	groupHandler := handlers.NewGroupHandler(groupService, statsService)
	taskHandler := handlers.NewTaskHandler(taskService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	statsHandler := handlers.NewStatsHandler(statsService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	router := gin.Default()

	// Middleware
	router.Use(handlers.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Публичные маршруты
	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	// Маршруты с авторизацией
	auth := api.Group("")
	auth.Use(handlers.AuthMiddleware(authService))
	{
		auth.GET("/auth/me", authHandler.Me)

		// Роли с правом управления пользователями
		admin := auth.Group("")
		admin.Use(handlers.RequireRoles(models.AdminRoles...))
		{
			admin.POST("/users", userHandler.CreateUser)
			admin.PUT("/users/:id", userHandler.UpdateUser)
			admin.DELETE("/users/:id", userHandler.DeleteUser)

			admin.POST("/groups", groupHandler.CreateGroup)
			admin.PUT("/groups/:id", groupHandler.UpdateGroup)
			admin.DELETE("/groups/:id", groupHandler.DeleteGroup)
			admin.POST("/groups/:id/students", groupHandler.AddStudent)
			admin.DELETE("/groups/:id/students/:student_id", groupHandler.RemoveStudent)

			admin.GET("/snapshots", snapshotHandler.List)
			admin.POST("/snapshots/export", snapshotHandler.Export)
			admin.POST("/snapshots/import", snapshotHandler.Import)
		}

		// Преподавательские маршруты
		teaching := auth.Group("")
		teaching.Use(handlers.RequireRoles(models.RoleTeacher, models.RoleHeadTeacher, models.RoleSuperAdmin))
		{
			teaching.POST("/tasks", taskHandler.CreateTask)
			teaching.PUT("/tasks/:id", taskHandler.UpdateTask)
			teaching.DELETE("/tasks/:id", taskHandler.DeleteTask)

			teaching.POST("/scores", scoreHandler.SetScore)
			teaching.DELETE("/scores/:student_id/:task_id", scoreHandler.DeleteScore)

			teaching.GET("/stats/groups/:id", statsHandler.GroupStats)
			teaching.GET("/stats/overview", statsHandler.Overview)
			teaching.GET("/stats/compare", statsHandler.CompareGroups)
		}

		// Общие маршруты: видимость решается внутри по роли
		auth.GET("/users", userHandler.ListUsers)
		auth.GET("/users/:id", userHandler.GetUser)
		auth.GET("/groups", groupHandler.ListGroups)
		auth.GET("/groups/:id", groupHandler.GetGroup)
		auth.GET("/tasks", taskHandler.Board)
		auth.GET("/scores", scoreHandler.ListScores)
		auth.GET("/stats/students/:id", statsHandler.StudentStats)
	}

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
