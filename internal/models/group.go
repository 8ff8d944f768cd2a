package models

import (
	"time"
)

// Group представляет учебную группу.
// TeacherID — слабая ссылка на преподавателя: при удалении пользователя
// она обнуляется отдельным шагом, владения здесь нет.
type Group struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	TeacherID *int64    `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Members []GroupMember `json:"members" gorm:"foreignKey:GroupID"`
}

// GroupMember представляет ученика в составе группы.
// Пара (group_id, student_id) уникальна — состав ведет себя как множество.
type GroupMember struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GroupID   int64     `json:"group_id" gorm:"not null;uniqueIndex:idx_group_student"`
	StudentID int64     `json:"student_id" gorm:"not null;uniqueIndex:idx_group_student"`
	JoinedAt  time.Time `json:"joined_at"`
}

// StudentIDs возвращает идентификаторы учеников группы в порядке вступления
func (g *Group) StudentIDs() []int64 {
	ids := make([]int64, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.StudentID)
	}
	return ids
}

// HasStudent отвечает, состоит ли ученик в группе
func (g *Group) HasStudent(studentID int64) bool {
	for _, m := range g.Members {
		if m.StudentID == studentID {
			return true
		}
	}
	return false
}

// TaughtBy отвечает, ведет ли группу указанный преподаватель
func (g *Group) TaughtBy(teacherID int64) bool {
	return g.TeacherID != nil && *g.TeacherID == teacherID
}
