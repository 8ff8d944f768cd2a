package services

import (
	"fmt"
	"log"

	"eduboard/internal/models"
	"eduboard/internal/repository"
	"eduboard/pkg/snapshot"
)

type SnapshotService interface {
	Export() (string, error)
	Import(name string) error
	List() ([]string, error)
}

type snapshotService struct {
	store  *snapshot.Store
	users  repository.UserRepository
	groups repository.GroupRepository
	tasks  repository.TaskRepository
	scores repository.ScoreRepository
}

func NewSnapshotService(store *snapshot.Store, users repository.UserRepository, groups repository.GroupRepository, tasks repository.TaskRepository, scores repository.ScoreRepository) SnapshotService {
	return &snapshotService{store: store, users: users, groups: groups, tasks: tasks, scores: scores}
}

// Export собирает полный срез состояния и пишет его на диск
func (s *snapshotService) Export() (string, error) {
	users, err := s.users.List()
	if err != nil {
		return "", fmt.Errorf("failed to load users: %w", err)
	}
	groups, err := s.groups.List()
	if err != nil {
		return "", fmt.Errorf("failed to load groups: %w", err)
	}
	board, err := s.tasks.Board()
	if err != nil {
		return "", fmt.Errorf("failed to load tasks: %w", err)
	}
	scores, err := s.scores.List()
	if err != nil {
		return "", fmt.Errorf("failed to load scores: %w", err)
	}

	name, err := s.store.Save(&snapshot.Snapshot{
		Users:  users,
		Groups: groups,
		AppData: snapshot.AppData{
			Tasks:  board,
			Scores: scores,
		},
	})
	if err != nil {
		return "", err
	}

	log.Printf("State exported to snapshot %s", name)
	return name, nil
}

// Import восстанавливает состояние из снапшота.
// Каждый слот заменяется целиком: частичных записей нет.
func (s *snapshotService) Import(name string) error {
	sn, err := s.store.Load(name)
	if err != nil {
		return err
	}

	if err := s.users.ReplaceAll(sn.Users); err != nil {
		return fmt.Errorf("failed to restore users: %w", err)
	}
	if err := s.groups.ReplaceAll(sn.Groups); err != nil {
		return fmt.Errorf("failed to restore groups: %w", err)
	}

	var tasks []models.Task
	for _, day := range models.Weekdays {
		tasks = append(tasks, sn.AppData.Tasks[day]...)
	}
	if err := s.tasks.ReplaceAll(tasks); err != nil {
		return fmt.Errorf("failed to restore tasks: %w", err)
	}
	if err := s.scores.ReplaceAll(sn.AppData.Scores); err != nil {
		return fmt.Errorf("failed to restore scores: %w", err)
	}

	log.Printf("State restored from snapshot %s", name)
	return nil
}

func (s *snapshotService) List() ([]string, error) {
	return s.store.List()
}
