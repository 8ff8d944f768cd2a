package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"eduboard/internal/models"
)

func TestSetScoreClampsToTaskMax(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	scoreSvc := NewScoreService(env.scores, env.users, env.tasks, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	student := env.createUser(t, models.RoleStudent, "student")

	task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "Listening", MaxScore: 10})
	require.NoError(t, err)

	s, err := scoreSvc.SetScore(student.ID, task.ID, 25)
	require.NoError(t, err)
	require.Equal(t, 10, s.Value)

	s, err = scoreSvc.SetScore(student.ID, task.ID, -3)
	require.NoError(t, err)
	require.Equal(t, 0, s.Value)
}

func TestSetScoreOverwritesCell(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	scoreSvc := NewScoreService(env.scores, env.users, env.tasks, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	student := env.createUser(t, models.RoleStudent, "student")

	task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "Listening"})
	require.NoError(t, err)

	_, err = scoreSvc.SetScore(student.ID, task.ID, 20)
	require.NoError(t, err)
	_, err = scoreSvc.SetScore(student.ID, task.ID, 35)
	require.NoError(t, err)

	table, err := scoreSvc.Table()
	require.NoError(t, err)
	require.Len(t, table, 1)
	require.Equal(t, 35, table[models.ScoreKey{StudentID: student.ID, TaskID: task.ID}])
}

func TestSetScoreRejectsUnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	scoreSvc := NewScoreService(env.scores, env.users, env.tasks, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "Listening"})
	require.NoError(t, err)

	_, err = scoreSvc.SetScore(999, task.ID, 10)
	require.Error(t, err)

	// Балл преподавателю выставить нельзя
	_, err = scoreSvc.SetScore(teacher.ID, task.ID, 10)
	require.Error(t, err)
}

func TestDeleteTaskCascadesScores(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	scoreSvc := NewScoreService(env.scores, env.users, env.tasks, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	student := env.createUser(t, models.RoleStudent, "student")

	task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "Listening"})
	require.NoError(t, err)
	_, err = scoreSvc.SetScore(student.ID, task.ID, 30)
	require.NoError(t, err)

	require.NoError(t, taskSvc.DeleteTask(task.ID))

	table, err := scoreSvc.Table()
	require.NoError(t, err)
	require.Empty(t, table)
}

func TestCreateTaskDefaults(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")

	first, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "one"})
	require.NoError(t, err)
	require.Equal(t, models.DefaultTaskMaxScore, first.MaxScore)

	// Идентификаторы растут даже при создании в одну миллисекунду
	second, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "two"})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	_, err = taskSvc.CreateTask(teacher.ID, NewTask{Weekday: "Funday", Title: "bad"})
	require.Error(t, err)
	_, err = taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday})
	require.Error(t, err)
}

func TestCreateTaskParallelUniqueIDs(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")

	// Задания создаются из параллельных запросов в одну миллисекунду:
	// идентификаторы все равно не должны совпасть
	const n = 16
	ids := make(chan int64, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "parallel"})
			if err != nil {
				errs <- err
				return
			}
			ids <- task.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := make(map[int64]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate task id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
}

func TestUpsertParallelSameCell(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	scoreSvc := NewScoreService(env.scores, env.users, env.tasks, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	student := env.createUser(t, models.RoleStudent, "student")

	task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "Listening"})
	require.NoError(t, err)

	// Параллельные записи в одну клетку: ни одна не падает
	// на уникальном индексе, в таблице ровно одна строка
	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			if _, err := scoreSvc.SetScore(student.ID, task.ID, value); err != nil {
				errs <- err
			}
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	table, err := scoreSvc.Table()
	require.NoError(t, err)
	require.Len(t, table, 1)
}

func TestVisibleBoardScopesSelection(t *testing.T) {
	env := newTestEnv(t)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	groupSvc := NewGroupService(env.groups, env.users, env.tasks)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	other := env.createUser(t, models.RoleTeacher, "other")

	g, err := groupSvc.CreateGroup("A", &teacher.ID)
	require.NoError(t, err)
	foreign, err := groupSvc.CreateGroup("B", &other.ID)
	require.NoError(t, err)

	_, err = taskSvc.CreateTask(other.ID, NewTask{Weekday: models.Monday, Title: "secret", GroupID: &foreign.ID})
	require.NoError(t, err)

	// Свою группу выбрать можно, чужую — нет
	_, err = taskSvc.VisibleBoard(*teacher, &g.ID)
	require.NoError(t, err)
	_, err = taskSvc.VisibleBoard(*teacher, &foreign.ID)
	require.Error(t, err)

	// Завуч не ограничен
	head := env.createUser(t, models.RoleHeadTeacher, "head")
	board, err := taskSvc.VisibleBoard(*head, &foreign.ID)
	require.NoError(t, err)
	require.Len(t, board[models.Monday], 1)
}
