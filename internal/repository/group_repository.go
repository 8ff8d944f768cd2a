package repository

import (
	"time"

	"gorm.io/gorm"

	"eduboard/internal/models"
)

type GroupRepository interface {
	Create(group *models.Group) error
	Update(group *models.Group) error
	Delete(id int64) error
	GetByID(id int64) (*models.Group, error)
	List() ([]models.Group, error)
	ListByTeacher(teacherID int64) ([]models.Group, error)

	AddMember(member *models.GroupMember) error
	RemoveMember(groupID, studentID int64) error
	RemoveMembers(groupID int64) error
	RemoveStudentEverywhere(studentID int64) error
	IsMember(groupID, studentID int64) (bool, error)

	ClearTeacher(teacherID int64) error
	ReplaceAll(groups []models.Group) error
}

type groupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) Create(group *models.Group) error { return r.db.Create(group).Error }

func (r *groupRepository) Update(group *models.Group) error { return r.db.Save(group).Error }

func (r *groupRepository) Delete(id int64) error {
	return r.db.Delete(&models.Group{}, "id = ?", id).Error
}

func (r *groupRepository) GetByID(id int64) (*models.Group, error) {
	var g models.Group
	err := r.db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("joined_at ASC")
	}).First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) List() ([]models.Group, error) {
	var gs []models.Group
	err := r.db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("joined_at ASC")
	}).Order("created_at ASC").Find(&gs).Error
	return gs, err
}

func (r *groupRepository) ListByTeacher(teacherID int64) ([]models.Group, error) {
	var gs []models.Group
	err := r.db.Preload("Members").Where("teacher_id = ?", teacherID).Order("created_at ASC").Find(&gs).Error
	return gs, err
}

func (r *groupRepository) AddMember(member *models.GroupMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.Create(member).Error
}

func (r *groupRepository) RemoveMember(groupID, studentID int64) error {
	return r.db.Where("group_id = ? AND student_id = ?", groupID, studentID).Delete(&models.GroupMember{}).Error
}

func (r *groupRepository) RemoveMembers(groupID int64) error {
	return r.db.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error
}

// RemoveStudentEverywhere убирает ученика из всех групп (каскад при удалении)
func (r *groupRepository) RemoveStudentEverywhere(studentID int64) error {
	return r.db.Where("student_id = ?", studentID).Delete(&models.GroupMember{}).Error
}

func (r *groupRepository) IsMember(groupID, studentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).Where("group_id = ? AND student_id = ?", groupID, studentID).Count(&count).Error
	return count > 0, err
}

// ClearTeacher обнуляет висячие ссылки на удаленного преподавателя
func (r *groupRepository) ClearTeacher(teacherID int64) error {
	return r.db.Model(&models.Group{}).Where("teacher_id = ?", teacherID).Update("teacher_id", nil).Error
}

// ReplaceAll целиком заменяет группы вместе с составами (восстановление снапшота)
func (r *groupRepository) ReplaceAll(groups []models.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Group{}).Error; err != nil {
			return err
		}
		if len(groups) == 0 {
			return nil
		}
		return tx.Create(&groups).Error
	})
}
