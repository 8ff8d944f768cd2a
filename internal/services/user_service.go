package services

import (
	"fmt"
	"time"

	"eduboard/internal/models"
	"eduboard/internal/repository"
)

type UserService interface {
	CreateUser(role models.UserRole, username, password, name string) (*models.User, error)
	GetUser(id int64) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id int64) error
	ListUsers() ([]models.User, error)
	ListStudents() ([]models.User, error)
	ListTeachers() ([]models.User, error)
}

type userService struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	scores repository.ScoreRepository
}

func NewUserService(users repository.UserRepository, groups repository.GroupRepository, scores repository.ScoreRepository) UserService {
	return &userService{users: users, groups: groups, scores: scores}
}

func (s *userService) CreateUser(role models.UserRole, username, password, name string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	u := &models.User{
		Role:      role,
		Username:  username,
		Password:  password,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.users.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *userService) GetUser(id int64) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *userService) UpdateUser(user *models.User) error {
	user.UpdatedAt = time.Now()
	return s.users.Update(user)
}

// DeleteUser удаляет пользователя и приводит в порядок ссылки на него:
// состав групп, висячий teacher_id и строки баллов. Каскад выполняется
// явным шагом здесь, а не подразумевается хранилищем.
func (s *userService) DeleteUser(id int64) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if err := s.groups.RemoveStudentEverywhere(id); err != nil {
		return fmt.Errorf("failed to remove user from groups: %w", err)
	}
	if err := s.groups.ClearTeacher(id); err != nil {
		return fmt.Errorf("failed to clear teacher references: %w", err)
	}
	if user.Role == models.RoleStudent {
		if err := s.scores.DeleteByStudent(id); err != nil {
			return fmt.Errorf("failed to delete user scores: %w", err)
		}
	}

	return s.users.Delete(id)
}

func (s *userService) ListUsers() ([]models.User, error) {
	return s.users.List()
}

func (s *userService) ListStudents() ([]models.User, error) {
	return s.users.ListByRole(models.RoleStudent)
}

func (s *userService) ListTeachers() ([]models.User, error) {
	return s.users.ListByRole(models.RoleTeacher)
}
