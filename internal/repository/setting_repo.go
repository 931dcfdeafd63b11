package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/model"
)

// HospitalSettingRepository 医院设置数据访问接口（单行语义）
type HospitalSettingRepository interface {
	Get(ctx context.Context) (*model.HospitalSetting, error)
	Create(ctx context.Context, s *model.HospitalSetting) error
	Update(ctx context.Context, s *model.HospitalSetting) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewHospitalSettingRepo 创建 HospitalSettingRepository 实例
func NewHospitalSettingRepo(db *gorm.DB) HospitalSettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context) (*model.HospitalSetting, error) {
	var s model.HospitalSetting
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingRepo) Create(ctx context.Context, s *model.HospitalSetting) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *settingRepo) Update(ctx context.Context, s *model.HospitalSetting) error {
	return r.db.WithContext(ctx).
		Model(&model.HospitalSetting{}).
		Where("setting_id = ?", s.SettingID).
		Updates(map[string]interface{}{
			"hospital_name":    s.HospitalName,
			"address":          s.Address,
			"contact_number":   s.ContactNumber,
			"hospital_logo":    s.HospitalLogo,
			"max_weekly_hours": s.MaxWeeklyHours,
		}).Error
}
