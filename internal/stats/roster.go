package stats

import (
	"eduboard/internal/models"
)

// VisibleGroups возвращает группы, доступные пользователю:
// преподаватель видит только свои, завуч и администратор — все
func VisibleGroups(actor models.User, groups []models.Group) []models.Group {
	if actor.Role != models.RoleTeacher {
		return groups
	}
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		if g.TaughtBy(actor.ID) {
			out = append(out, g)
		}
	}
	return out
}

// VisibleUsers возвращает учеников, видимых пользователю.
// Если выбрана конкретная группа, список сужается до ее состава.
// Преподаватель без выбранной группы видит объединение учеников своих
// групп без повторов; остальные роли — всех учеников.
func VisibleUsers(actor models.User, users []models.User, groups []models.Group, selected *models.Group) []models.User {
	students := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleStudent {
			students = append(students, u)
		}
	}

	if selected != nil {
		out := make([]models.User, 0, len(students))
		for _, s := range students {
			if selected.HasStudent(s.ID) {
				out = append(out, s)
			}
		}
		return out
	}

	if actor.Role == models.RoleTeacher {
		visible := make(map[int64]struct{})
		for _, g := range groups {
			if !g.TaughtBy(actor.ID) {
				continue
			}
			for _, id := range g.StudentIDs() {
				visible[id] = struct{}{}
			}
		}
		out := make([]models.User, 0, len(students))
		for _, s := range students {
			if _, ok := visible[s.ID]; ok {
				out = append(out, s)
			}
		}
		return out
	}

	return students
}

// VisibleTasks фильтрует недельную доску по правилам видимости.
// Ученик видит общие задания (group_id = nil) и задания своих групп.
// Преподаватель с выбранной группой — общие и задания этой группы.
// В остальных случаях доска возвращается без фильтрации.
func VisibleTasks(actor models.User, groups []models.Group, board models.TaskBoard, selected *models.Group) models.TaskBoard {
	if actor.Role == models.RoleStudent {
		own := make(map[int64]struct{})
		for _, g := range groups {
			if g.HasStudent(actor.ID) {
				own[g.ID] = struct{}{}
			}
		}
		return filterBoard(board, func(t models.Task) bool {
			if t.GroupID == nil {
				return true
			}
			_, ok := own[*t.GroupID]
			return ok
		})
	}

	if selected != nil {
		return filterBoard(board, func(t models.Task) bool {
			return t.GroupID == nil || *t.GroupID == selected.ID
		})
	}

	return board
}

// filterBoard строит новую доску из заданий, прошедших проверку,
// сохраняя порядок внутри каждого дня
func filterBoard(board models.TaskBoard, keep func(models.Task) bool) models.TaskBoard {
	out := make(models.TaskBoard, len(board))
	for _, day := range models.Weekdays {
		tasks := board[day]
		if len(tasks) == 0 {
			continue
		}
		kept := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if keep(t) {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			out[day] = kept
		}
	}
	return out
}
