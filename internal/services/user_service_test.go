package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"eduboard/internal/models"
)

func TestDeleteStudentCascades(t *testing.T) {
	env := newTestEnv(t)
	userSvc := NewUserService(env.users, env.groups, env.scores)
	groupSvc := NewGroupService(env.groups, env.users, env.tasks)
	taskSvc := NewTaskService(env.tasks, env.groups, env.scores, nil)
	scoreSvc := NewScoreService(env.scores, env.users, env.tasks, nil)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	student := env.createUser(t, models.RoleStudent, "student")

	g, err := groupSvc.CreateGroup("Group A", &teacher.ID)
	require.NoError(t, err)
	require.NoError(t, groupSvc.AddStudent(g.ID, student.ID))

	task, err := taskSvc.CreateTask(teacher.ID, NewTask{Weekday: models.Monday, Title: "Listening"})
	require.NoError(t, err)
	_, err = scoreSvc.SetScore(student.ID, task.ID, 30)
	require.NoError(t, err)

	require.NoError(t, userSvc.DeleteUser(student.ID))

	// Состав группы и баллы вычищены
	got, err := groupSvc.GetGroup(g.ID)
	require.NoError(t, err)
	require.Empty(t, got.Members)

	table, err := env.scores.Table()
	require.NoError(t, err)
	require.Empty(t, table)
}

func TestDeleteTeacherClearsGroupReference(t *testing.T) {
	env := newTestEnv(t)
	userSvc := NewUserService(env.users, env.groups, env.scores)
	groupSvc := NewGroupService(env.groups, env.users, env.tasks)

	teacher := env.createUser(t, models.RoleTeacher, "teacher")
	g, err := groupSvc.CreateGroup("Group A", &teacher.ID)
	require.NoError(t, err)

	require.NoError(t, userSvc.DeleteUser(teacher.ID))

	// Группа живет дальше с обнуленной ссылкой на преподавателя
	got, err := groupSvc.GetGroup(g.ID)
	require.NoError(t, err)
	require.Nil(t, got.TeacherID)
}

func TestCreateUserRequiresCredentials(t *testing.T) {
	env := newTestEnv(t)
	userSvc := NewUserService(env.users, env.groups, env.scores)

	_, err := userSvc.CreateUser(models.RoleStudent, "", "pwd", "noname")
	require.Error(t, err)
	_, err = userSvc.CreateUser(models.RoleStudent, "user", "", "noname")
	require.Error(t, err)
}
