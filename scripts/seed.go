package main

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eduboard/internal/models"
)

func main() {
	// Подключаемся к базе данных
	db, err := gorm.Open(sqlite.Open("eduboard.db"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Автомиграция
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Task{},
		&models.Score{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Создаем тестовых пользователей
	users := []models.User{
		{Role: models.RoleSuperAdmin, Username: "admin", Password: "admin123", Name: "Administrator"},
		{Role: models.RoleHeadTeacher, Username: "head", Password: "head123", Name: "Мария Иванова"},
		{Role: models.RoleTeacher, Username: "teacher1", Password: "teach123", Name: "Александр Петров"},
		{Role: models.RoleTeacher, Username: "teacher2", Password: "teach123", Name: "Ольга Смирнова"},
		{Role: models.RoleStudent, Username: "student1", Password: "stud123", Name: "Иван Кузнецов"},
		{Role: models.RoleStudent, Username: "student2", Password: "stud123", Name: "Анна Попова"},
		{Role: models.RoleStudent, Username: "student3", Password: "stud123", Name: "Дмитрий Соколов"},
		{Role: models.RoleStudent, Username: "student4", Password: "stud123", Name: "Елена Морозова"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", users[i].Username, err)
		}
	}

	teacher1 := users[2]
	teacher2 := users[3]
	students := users[4:]

	// Создаем группы с составами
	groupA := models.Group{Name: "IELTS Intensive A", TeacherID: &teacher1.ID}
	groupB := models.Group{Name: "IELTS Evening B", TeacherID: &teacher2.ID}
	for _, g := range []*models.Group{&groupA, &groupB} {
		if err := db.Create(g).Error; err != nil {
			log.Fatalf("Failed to create group %s: %v", g.Name, err)
		}
	}

	members := []models.GroupMember{
		{GroupID: groupA.ID, StudentID: students[0].ID, JoinedAt: time.Now()},
		{GroupID: groupA.ID, StudentID: students[1].ID, JoinedAt: time.Now()},
		{GroupID: groupB.ID, StudentID: students[2].ID, JoinedAt: time.Now()},
		{GroupID: groupB.ID, StudentID: students[3].ID, JoinedAt: time.Now()},
	}
	for i := range members {
		if err := db.Create(&members[i]).Error; err != nil {
			log.Fatalf("Failed to add group member: %v", err)
		}
	}

	// Заполняем недельную доску
	base := time.Now().UnixMilli()
	week := []struct {
		day   models.Weekday
		title string
	}{
		{models.Monday, "Listening practice: section 3"},
		{models.Tuesday, "Reading: matching headings"},
		{models.Wednesday, "Writing task 2: opinion essay"},
		{models.Thursday, "Speaking part 2: cue cards"},
		{models.Friday, "Mock test: full module"},
		{models.Sunday, "Weekly review quiz"},
	}
	tasks := make([]models.Task, 0, len(week))
	for i, w := range week {
		t := models.Task{
			ID:        base + int64(i),
			Weekday:   w.day,
			Title:     w.title,
			MaxScore:  models.DefaultTaskMaxScore,
			Deadline:  "18:00",
			Date:      time.Now().AddDate(0, 0, i),
			CreatedBy: teacher1.ID,
		}
		if w.day == models.Friday {
			// Пробный тест — только для первой группы
			t.GroupID = &groupA.ID
		}
		if err := db.Create(&t).Error; err != nil {
			log.Fatalf("Failed to create task %q: %v", t.Title, err)
		}
		tasks = append(tasks, t)
	}

	// Выставляем часть баллов: разреженная таблица — это нормально
	scores := []models.Score{
		{StudentID: students[0].ID, TaskID: tasks[0].ID, Value: 36},
		{StudentID: students[0].ID, TaskID: tasks[1].ID, Value: 30},
		{StudentID: students[1].ID, TaskID: tasks[0].ID, Value: 24},
		{StudentID: students[2].ID, TaskID: tasks[2].ID, Value: 32},
		{StudentID: students[3].ID, TaskID: tasks[3].ID, Value: 28},
	}
	for i := range scores {
		if err := db.Create(&scores[i]).Error; err != nil {
			log.Fatalf("Failed to create score: %v", err)
		}
	}

	fmt.Println("Seed data created:")
	fmt.Printf("  users: %d, groups: 2, tasks: %d, scores: %d\n", len(users), len(tasks), len(scores))
}
