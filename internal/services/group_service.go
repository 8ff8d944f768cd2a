package services

import (
	"fmt"
	"time"

	"eduboard/internal/models"
	"eduboard/internal/repository"
)

type GroupService interface {
	CreateGroup(name string, teacherID *int64) (*models.Group, error)
	GetGroup(id int64) (*models.Group, error)
	UpdateGroup(group *models.Group) error
	DeleteGroup(id int64) error
	ListGroups() ([]models.Group, error)

	AddStudent(groupID, studentID int64) error
	RemoveStudent(groupID, studentID int64) error
}

type groupService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
	tasks  repository.TaskRepository
}

func NewGroupService(groups repository.GroupRepository, users repository.UserRepository, tasks repository.TaskRepository) GroupService {
	return &groupService{groups: groups, users: users, tasks: tasks}
}

func (s *groupService) CreateGroup(name string, teacherID *int64) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	if teacherID != nil {
		teacher, err := s.users.GetByID(*teacherID)
		if err != nil {
			return nil, fmt.Errorf("teacher not found: %w", err)
		}
		if !teacher.IsTeacherLike() {
			return nil, fmt.Errorf("user %d is not a teacher", *teacherID)
		}
	}

	g := &models.Group{
		Name:      name,
		TeacherID: teacherID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.groups.Create(g); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return g, nil
}

func (s *groupService) GetGroup(id int64) (*models.Group, error) {
	return s.groups.GetByID(id)
}

func (s *groupService) UpdateGroup(group *models.Group) error {
	group.UpdatedAt = time.Now()
	return s.groups.Update(group)
}

// DeleteGroup удаляет группу, ее состав и обнуляет ссылки на нее
// в заданиях: они становятся видимыми всем группам
func (s *groupService) DeleteGroup(id int64) error {
	if _, err := s.groups.GetByID(id); err != nil {
		return fmt.Errorf("group not found: %w", err)
	}
	if err := s.groups.RemoveMembers(id); err != nil {
		return fmt.Errorf("failed to remove group members: %w", err)
	}
	if err := s.tasks.ClearGroup(id); err != nil {
		return fmt.Errorf("failed to clear task references: %w", err)
	}
	return s.groups.Delete(id)
}

func (s *groupService) ListGroups() ([]models.Group, error) {
	return s.groups.List()
}

// AddStudent добавляет ученика в группу. Состав — множество:
// повторное добавление молча игнорируется.
func (s *groupService) AddStudent(groupID, studentID int64) error {
	student, err := s.users.GetByID(studentID)
	if err != nil {
		return fmt.Errorf("student not found: %w", err)
	}
	if student.Role != models.RoleStudent {
		return fmt.Errorf("user %d is not a student", studentID)
	}
	if _, err := s.groups.GetByID(groupID); err != nil {
		return fmt.Errorf("group not found: %w", err)
	}

	exists, err := s.groups.IsMember(groupID, studentID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.groups.AddMember(&models.GroupMember{GroupID: groupID, StudentID: studentID})
}

func (s *groupService) RemoveStudent(groupID, studentID int64) error {
	return s.groups.RemoveMember(groupID, studentID)
}
