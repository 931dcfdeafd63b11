package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/model"
)

// SpecialtyRepository 专科数据访问接口
type SpecialtyRepository interface {
	Create(ctx context.Context, s *model.Specialty) error
	List(ctx context.Context) ([]model.Specialty, error)
	GetByID(ctx context.Context, id string) (*model.Specialty, error)
	GetByName(ctx context.Context, name string) (*model.Specialty, error)
	Update(ctx context.Context, s *model.Specialty) error
	Delete(ctx context.Context, id string) error
}

type specialtyRepo struct {
	db *gorm.DB
}

// NewSpecialtyRepo 创建 SpecialtyRepository 实例
func NewSpecialtyRepo(db *gorm.DB) SpecialtyRepository {
	return &specialtyRepo{db: db}
}

func (r *specialtyRepo) Create(ctx context.Context, s *model.Specialty) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *specialtyRepo) List(ctx context.Context) ([]model.Specialty, error) {
	var specialties []model.Specialty
	err := r.db.WithContext(ctx).Order("name ASC").Find(&specialties).Error
	return specialties, err
}

func (r *specialtyRepo) GetByID(ctx context.Context, id string) (*model.Specialty, error) {
	var s model.Specialty
	err := r.db.WithContext(ctx).Where("specialty_id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialtyRepo) GetByName(ctx context.Context, name string) (*model.Specialty, error) {
	var s model.Specialty
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialtyRepo) Update(ctx context.Context, s *model.Specialty) error {
	return r.db.WithContext(ctx).
		Model(&model.Specialty{}).
		Where("specialty_id = ?", s.SpecialtyID).
		Updates(map[string]interface{}{
			"name":        s.Name,
			"description": s.Description,
			"is_active":   s.IsActive,
		}).Error
}

func (r *specialtyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("specialty_id = ?", id).
		Delete(&model.Specialty{}).Error
}
