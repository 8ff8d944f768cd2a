package repository

import (
	"gorm.io/gorm"

	"eduboard/internal/models"
)

type TaskRepository interface {
	Create(task *models.Task) error
	Update(task *models.Task) error
	Delete(id int64) error
	GetByID(id int64) (*models.Task, error)
	List() ([]models.Task, error)
	Board() (models.TaskBoard, error)
	ClearGroup(groupID int64) error
	ReplaceAll(tasks []models.Task) error
}

type taskRepository struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) TaskRepository { return &taskRepository{db: db} }

func (r *taskRepository) Create(task *models.Task) error { return r.db.Create(task).Error }

func (r *taskRepository) Update(task *models.Task) error { return r.db.Save(task).Error }

func (r *taskRepository) Delete(id int64) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

func (r *taskRepository) GetByID(id int64) (*models.Task, error) {
	var t models.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) List() ([]models.Task, error) {
	var ts []models.Task
	// ID растет со временем создания, так что это и порядок добавления
	err := r.db.Order("id ASC").Find(&ts).Error
	return ts, err
}

// Board раскладывает задания по дням недели в порядке создания
func (r *taskRepository) Board() (models.TaskBoard, error) {
	tasks, err := r.List()
	if err != nil {
		return nil, err
	}
	board := make(models.TaskBoard)
	for _, t := range tasks {
		board[t.Weekday] = append(board[t.Weekday], t)
	}
	return board, nil
}

// ClearGroup обнуляет ссылку на удаленную группу: задания становятся общими
func (r *taskRepository) ClearGroup(groupID int64) error {
	return r.db.Model(&models.Task{}).Where("group_id = ?", groupID).Update("group_id", nil).Error
}

// ReplaceAll целиком заменяет задания (восстановление снапшота)
func (r *taskRepository) ReplaceAll(tasks []models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		return tx.Create(&tasks).Error
	})
}
