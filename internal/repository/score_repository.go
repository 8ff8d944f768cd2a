package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eduboard/internal/models"
)

type ScoreRepository interface {
	Upsert(score *models.Score) error
	Get(studentID, taskID int64) (*models.Score, error)
	Delete(studentID, taskID int64) error
	DeleteByStudent(studentID int64) error
	DeleteByTask(taskID int64) error
	List() ([]models.Score, error)
	Table() (models.ScoreTable, error)
	ReplaceAll(scores []models.Score) error
}

type scoreRepository struct{ db *gorm.DB }

func NewScoreRepository(db *gorm.DB) ScoreRepository { return &scoreRepository{db: db} }

// Upsert пишет балл в клетку (ученик, задание), перезаписывая прежний.
// Один атомарный оператор: параллельные записи в одну клетку не
// сталкиваются на уникальном индексе.
func (r *scoreRepository) Upsert(score *models.Score) error {
	score.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "task_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(score).Error
}

func (r *scoreRepository) Get(studentID, taskID int64) (*models.Score, error) {
	var s models.Score
	err := r.db.Where("student_id = ? AND task_id = ?", studentID, taskID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scoreRepository) Delete(studentID, taskID int64) error {
	return r.db.Where("student_id = ? AND task_id = ?", studentID, taskID).Delete(&models.Score{}).Error
}

// DeleteByStudent чистит баллы удаленного ученика (каскад)
func (r *scoreRepository) DeleteByStudent(studentID int64) error {
	return r.db.Where("student_id = ?", studentID).Delete(&models.Score{}).Error
}

// DeleteByTask чистит баллы удаленного задания (каскад)
func (r *scoreRepository) DeleteByTask(taskID int64) error {
	return r.db.Where("task_id = ?", taskID).Delete(&models.Score{}).Error
}

func (r *scoreRepository) List() ([]models.Score, error) {
	var ss []models.Score
	err := r.db.Find(&ss).Error
	return ss, err
}

// Table загружает всю таблицу баллов в память для расчетов
func (r *scoreRepository) Table() (models.ScoreTable, error) {
	rows, err := r.List()
	if err != nil {
		return nil, err
	}
	return models.BuildScoreTable(rows), nil
}

// ReplaceAll целиком заменяет таблицу баллов (восстановление снапшота)
func (r *scoreRepository) ReplaceAll(scores []models.Score) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Score{}).Error; err != nil {
			return err
		}
		if len(scores) == 0 {
			return nil
		}
		return tx.Create(&scores).Error
	})
}
