package services

import (
	"fmt"

	"eduboard/internal/models"
	"eduboard/internal/repository"
	"eduboard/internal/stats"
)

// StudentReport — сводка ученика вместе с его слабым навыком
type StudentReport struct {
	stats.StudentStats
	WeakestSkill string `json:"weakest_skill"`
}

type StatsService interface {
	StudentStats(studentID int64) (*StudentReport, error)
	GroupStats(groupID int64) (*stats.GroupStats, error)
	ClassOverview() (*stats.Overview, error)
	CompareGroups(selectedIDs []int64) (*stats.Comparison, error)
	VisibleUsers(actor models.User, selectedGroupID *int64) ([]models.User, error)
	VisibleGroups(actor models.User) ([]models.Group, error)
}

type statsService struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	tasks  repository.TaskRepository
	scores repository.ScoreRepository
}

func NewStatsService(users repository.UserRepository, groups repository.GroupRepository, tasks repository.TaskRepository, scores repository.ScoreRepository) StatsService {
	return &statsService{users: users, groups: groups, tasks: tasks, scores: scores}
}

// StudentStats считает сводку ученика по всей доске и таблице баллов
func (s *statsService) StudentStats(studentID int64) (*StudentReport, error) {
	student, err := s.users.GetByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("student not found: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("user %d is not a student", studentID)
	}

	board, table, err := s.loadState()
	if err != nil {
		return nil, err
	}

	st := stats.ForStudent(studentID, board, table)
	report := &StudentReport{StudentStats: st}
	if skill, ok := stats.WeakestSkill(st.SkillBands); ok {
		report.WeakestSkill = skill
	}
	return report, nil
}

func (s *statsService) GroupStats(groupID int64) (*stats.GroupStats, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		return nil, fmt.Errorf("group not found: %w", err)
	}

	board, table, err := s.loadState()
	if err != nil {
		return nil, err
	}

	gs := stats.ForGroup(*group, board, table)
	return &gs, nil
}

func (s *statsService) ClassOverview() (*stats.Overview, error) {
	students, err := s.users.ListByRole(models.RoleStudent)
	if err != nil {
		return nil, err
	}
	board, table, err := s.loadState()
	if err != nil {
		return nil, err
	}

	ov := stats.ClassOverview(students, board, table)
	return &ov, nil
}

// CompareGroups строит матрицу сравнения по выбранным группам.
// Меньше двух групп — ошибка «нечего сравнивать» для обработчика.
func (s *statsService) CompareGroups(selectedIDs []int64) (*stats.Comparison, error) {
	groups, err := s.groups.List()
	if err != nil {
		return nil, err
	}
	board, table, err := s.loadState()
	if err != nil {
		return nil, err
	}

	groupStats := make([]stats.GroupStats, 0, len(groups))
	for _, g := range groups {
		groupStats = append(groupStats, stats.ForGroup(g, board, table))
	}

	cmp, ok := stats.CompareGroups(selectedIDs, groupStats)
	if !ok {
		return nil, fmt.Errorf("at least two groups are required for comparison")
	}
	return cmp, nil
}

func (s *statsService) VisibleUsers(actor models.User, selectedGroupID *int64) ([]models.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.List()
	if err != nil {
		return nil, err
	}

	// Выбирать можно только из групп в области видимости пользователя:
	// чужая группа для преподавателя неотличима от несуществующей
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

	return stats.VisibleUsers(actor, users, groups, selected), nil
}

func (s *statsService) VisibleGroups(actor models.User) ([]models.Group, error) {
	groups, err := s.groups.List()
	if err != nil {
		return nil, err
	}
	return stats.VisibleGroups(actor, groups), nil
}

func (s *statsService) loadState() (models.TaskBoard, models.ScoreTable, error) {
	board, err := s.tasks.Board()
	if err != nil {
		return nil, nil, err
	}
	table, err := s.scores.Table()
	if err != nil {
		return nil, nil, err
	}
	return board, table, nil
}
