package repository

import (
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByID(id uuid.UUID) (*model.Assignment, error)
	FindByIDWithSubmissions(id uuid.UUID) (*model.Assignment, error)
	Save(assignment *model.Assignment) error
	FindByTeacher(teacherID uuid.UUID) ([]model.Assignment, error)
	FindByStudent(studentID uuid.UUID) ([]model.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *assignmentRepository) FindByIDWithSubmissions(id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.Preload("Submissions", func(db *gorm.DB) *gorm.DB {
		return db.Order("submissions.created_at ASC")
	}).First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *assignmentRepository) Save(assignment *model.Assignment) error {
	return r.db.Save(assignment).Error
}

func (r *assignmentRepository) FindByTeacher(teacherID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

// FindByStudent matches membership in the student_ids array column.
func (r *assignmentRepository) FindByStudent(studentID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.Where("? = ANY(student_ids)", studentID.String()).Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}
