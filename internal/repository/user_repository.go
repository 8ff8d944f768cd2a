package repository

import (
	"gorm.io/gorm"

	"eduboard/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id int64) error
	GetByID(id int64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List() ([]models.User, error)
	ListByRole(role models.UserRole) ([]models.User, error)
	ReplaceAll(users []models.User) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(user *models.User) error { return r.db.Create(user).Error }

func (r *userRepository) Update(user *models.User) error { return r.db.Save(user).Error }

func (r *userRepository) Delete(id int64) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List() ([]models.User, error) {
	var us []models.User
	err := r.db.Order("created_at ASC").Find(&us).Error
	return us, err
}

func (r *userRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	var us []models.User
	err := r.db.Where("role = ?", role).Order("created_at ASC").Find(&us).Error
	return us, err
}

// ReplaceAll целиком заменяет множество пользователей (восстановление снапшота)
func (r *userRepository) ReplaceAll(users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		return tx.Create(&users).Error
	})
}
