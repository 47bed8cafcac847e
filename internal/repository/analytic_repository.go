package repository

import (
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/model"
	"gorm.io/gorm"
)

type AnalyticRepository interface {
	Create(analytic *model.Analytic) error
	FindBySubmission(submissionID uuid.UUID) (*model.Analytic, error)
	Save(analytic *model.Analytic) error
}

type analyticRepository struct {
	db *gorm.DB
}

func NewAnalyticRepository(db *gorm.DB) AnalyticRepository {
	return &analyticRepository{db: db}
}

func (r *analyticRepository) Create(analytic *model.Analytic) error {
	return r.db.Create(analytic).Error
}

func (r *analyticRepository) FindBySubmission(submissionID uuid.UUID) (*model.Analytic, error) {
	var analytic model.Analytic
	err := r.db.First(&analytic, "submission_id = ?", submissionID).Error
	return &analytic, err
}

func (r *analyticRepository) Save(analytic *model.Analytic) error {
	return r.db.Save(analytic).Error
}
