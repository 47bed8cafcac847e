package repository

import (
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindStudents() ([]model.User, error)
	CountStudentsByIDs(ids []uuid.UUID) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "id = ?", id).Error
	return &user, err
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "username = ?", username).Error
	return &user, err
}

func (r *userRepository) FindStudents() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role = ?", model.RoleStudent).Order("created_at ASC").Find(&users).Error
	return users, err
}

// CountStudentsByIDs counts users among ids that actually exist with the
// student role. Used to validate assignment rosters.
func (r *userRepository) CountStudentsByIDs(ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("role = ?", model.RoleStudent).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}
