package services

import (
	"fmt"
	"sync"
	"time"

	"eduboard/internal/models"
	"eduboard/internal/repository"
	"eduboard/internal/stats"
	"eduboard/pkg/telegram"
)

// NewTask содержит данные для создания задания
type NewTask struct {
	Weekday  models.Weekday `json:"weekday"`
	Title    string         `json:"title"`
	MaxScore int            `json:"max_score"`
	Deadline string         `json:"deadline"` // "HH:MM"
	Date     time.Time      `json:"date"`
	GroupID  *int64         `json:"group_id"`
}

type TaskService interface {
	CreateTask(createdBy int64, nt NewTask) (*models.Task, error)
	GetTask(id int64) (*models.Task, error)
	UpdateTask(task *models.Task) error
	DeleteTask(id int64) error
	Board() (models.TaskBoard, error)
	VisibleBoard(actor models.User, selectedGroupID *int64) (models.TaskBoard, error)
}

type taskService struct {
	tasks  repository.TaskRepository
	groups repository.GroupRepository
	scores repository.ScoreRepository
	bot    *telegram.Bot

	// Сервис один на все запросы, выдача ID требует блокировки
	mu     sync.Mutex
	lastID int64
}

func NewTaskService(tasks repository.TaskRepository, groups repository.GroupRepository, scores repository.ScoreRepository, bot *telegram.Bot) TaskService {
	return &taskService{tasks: tasks, groups: groups, scores: scores, bot: bot}
}

// CreateTask создает задание на недельной доске.
// Идентификатор выдается из миллисекундного времени, поэтому порядок
// по ID повторяет порядок создания; при создании нескольких заданий
// в одну миллисекунду идентификатор сдвигается вперед.
func (s *taskService) CreateTask(createdBy int64, nt NewTask) (*models.Task, error) {
	if !nt.Weekday.IsValid() {
		return nil, fmt.Errorf("invalid weekday: %q", nt.Weekday)
	}
	if nt.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if nt.GroupID != nil {
		if _, err := s.groups.GetByID(*nt.GroupID); err != nil {
			return nil, fmt.Errorf("group not found: %w", err)
		}
	}

	maxScore := nt.MaxScore
	if maxScore <= 0 {
		maxScore = models.DefaultTaskMaxScore
	}

	s.mu.Lock()
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	s.mu.Unlock()

	t := &models.Task{
		ID:        id,
		Weekday:   nt.Weekday,
		Title:     nt.Title,
		MaxScore:  maxScore,
		Deadline:  nt.Deadline,
		Date:      nt.Date,
		GroupID:   nt.GroupID,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.tasks.Create(t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.bot.SendTaskNotification(t.Title, string(t.Weekday), t.Deadline, t.MaxScore)
	return t, nil
}

func (s *taskService) GetTask(id int64) (*models.Task, error) {
	return s.tasks.GetByID(id)
}

func (s *taskService) UpdateTask(task *models.Task) error {
	if !task.Weekday.IsValid() {
		return fmt.Errorf("invalid weekday: %q", task.Weekday)
	}
	task.UpdatedAt = time.Now()
	return s.tasks.Update(task)
}

// DeleteTask удаляет задание вместе с его баллами
func (s *taskService) DeleteTask(id int64) error {
	if _, err := s.tasks.GetByID(id); err != nil {
		return fmt.Errorf("task not found: %w", err)
	}
	if err := s.scores.DeleteByTask(id); err != nil {
		return fmt.Errorf("failed to delete task scores: %w", err)
	}
	return s.tasks.Delete(id)
}

func (s *taskService) Board() (models.TaskBoard, error) {
	return s.tasks.Board()
}

// VisibleBoard возвращает доску, отфильтрованную по правилам видимости
// для пользователя и, возможно, выбранной группы
func (s *taskService) VisibleBoard(actor models.User, selectedGroupID *int64) (models.TaskBoard, error) {
	board, err := s.tasks.Board()
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.List()
	if err != nil {
		return nil, err
	}

	// Выбирать можно только из групп в области видимости пользователя
	var selected *models.Group
	if selectedGroupID != nil {
		visible := stats.VisibleGroups(actor, groups)
		for i := range visible {
			if visible[i].ID == *selectedGroupID {
				selected = &visible[i]
				break
			}
		}
		if selected == nil {
			return nil, fmt.Errorf("group %d not found", *selectedGroupID)
		}
	}

	return stats.VisibleTasks(actor, groups, board, selected), nil
}
