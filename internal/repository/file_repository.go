package repository

import (
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/model"
	"gorm.io/gorm"
)

type FileRepository interface {
	FindByID(id uuid.UUID) (*model.File, error)
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) FindByID(id uuid.UUID) (*model.File, error) {
	var file model.File
	err := r.db.First(&file, "id = ?", id).Error
	return &file, err
}
