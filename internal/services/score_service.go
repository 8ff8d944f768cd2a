package services

import (
	"fmt"
	"time"

	"eduboard/internal/models"
	"eduboard/internal/repository"
	"eduboard/internal/stats"
	"eduboard/pkg/telegram"
)

type ScoreService interface {
	SetScore(studentID, taskID int64, value int) (*models.Score, error)
	DeleteScore(studentID, taskID int64) error
	Table() (models.ScoreTable, error)
	List() ([]models.Score, error)
}

type scoreService struct {
	scores repository.ScoreRepository
	users  repository.UserRepository
	tasks  repository.TaskRepository
	bot    *telegram.Bot
}

func NewScoreService(scores repository.ScoreRepository, users repository.UserRepository, tasks repository.TaskRepository, bot *telegram.Bot) ScoreService {
	return &scoreService{scores: scores, users: users, tasks: tasks, bot: bot}
}

// SetScore записывает балл в клетку (ученик, задание).
// Балл зажимается в границы [0, максимум задания]; клетка с прежним
// значением перезаписывается целиком.
func (s *scoreService) SetScore(studentID, taskID int64, value int) (*models.Score, error) {
	student, err := s.users.GetByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("student not found: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("user %d is not a student", studentID)
	}

	task, err := s.tasks.GetByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	max := task.EffectiveMaxScore()
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}

	score := &models.Score{
		StudentID: studentID,
		TaskID:    taskID,
		Value:     value,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.scores.Upsert(score); err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	if value > 0 {
		band := stats.Band(float64(value) / float64(max) * 100)
		s.bot.SendScoreNotification(student.Name, task.Title, value, max, band)
	}
	return score, nil
}

func (s *scoreService) DeleteScore(studentID, taskID int64) error {
	return s.scores.Delete(studentID, taskID)
}

func (s *scoreService) Table() (models.ScoreTable, error) {
	return s.scores.Table()
}

func (s *scoreService) List() ([]models.Score, error) {
	return s.scores.List()
}
