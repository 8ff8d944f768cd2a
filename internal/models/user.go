package models

import (
	"time"
)

// UserRole определяет роли пользователей
type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleTeacher     UserRole = "teacher"
	RoleHeadTeacher UserRole = "headteacher"
	RoleSuperAdmin  UserRole = "superadmin"
)

// AdminRoles — роли с правом управления пользователями и группами
var AdminRoles = []UserRole{RoleHeadTeacher, RoleSuperAdmin}

// User представляет пользователя системы
type User struct {
	ID       int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Role     UserRole `json:"role" gorm:"type:text;default:'student';index"`
	Username string   `json:"username" gorm:"type:text;index"`
	// Пароль хранится открытым текстом: это не граница безопасности,
	// а часть исходной модели данных
	Password  string    `json:"password" gorm:"type:text"`
	Name      string    `json:"name" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin отвечает, может ли пользователь управлять пользователями и группами
func (u *User) IsAdmin() bool {
	return u.Role == RoleHeadTeacher || u.Role == RoleSuperAdmin
}

// IsTeacherLike отвечает, является ли пользователь преподавателем или завучем
func (u *User) IsTeacherLike() bool {
	return u.Role == RoleTeacher || u.Role == RoleHeadTeacher
}
