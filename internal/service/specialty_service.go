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

// ── 专科模块业务错误 ──

var (
	ErrSpecialtyNameExists = errors.New("专科名称已存在")
	ErrSpecialtyInUse      = errors.New("专科已被员工引用，无法删除")
)

// SpecialtyService 专科参照数据业务接口
type SpecialtyService interface {
	List(ctx context.Context) ([]dto.SpecialtyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SpecialtyResponse, error)
	Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, id string) error
}

type specialtyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSpecialtyService 创建 SpecialtyService 实例
func NewSpecialtyService(repo *repository.Repository, logger *zap.Logger) SpecialtyService {
	return &specialtyService{repo: repo, logger: logger}
}

func (s *specialtyService) List(ctx context.Context) ([]dto.SpecialtyResponse, error) {
	specialties, err := s.repo.Specialty.List(ctx)
	if err != nil {
		s.logger.Error("查询专科列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.SpecialtyResponse, 0, len(specialties))
	for i := range specialties {
		resp = append(resp, *toSpecialtyResponse(&specialties[i]))
	}
	return resp, nil
}

func (s *specialtyService) GetByID(ctx context.Context, id string) (*dto.SpecialtyResponse, error) {
	specialty, err := s.repo.Specialty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("查询专科失败", zap.Error(err))
		return nil, err
	}
	return toSpecialtyResponse(specialty), nil
}

func (s *specialtyService) Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	if err := s.checkNameFree(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	specialty := &model.Specialty{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		specialty.IsActive = *req.IsActive
	}

	if err := s.repo.Specialty.Create(ctx, specialty); err != nil {
		s.logger.Error("创建专科失败", zap.Error(err))
		return nil, err
	}
	return toSpecialtyResponse(specialty), nil
}

func (s *specialtyService) Update(ctx context.Context, id string, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := s.repo.Specialty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpecialtyNotFound
		}
		return nil, err
	}

	if req.Name != specialty.Name {
		if err := s.checkNameFree(ctx, req.Name, id); err != nil {
			return nil, err
		}
	}

	specialty.Name = req.Name
	if req.Description != nil {
		specialty.Description = *req.Description
	}
	if req.IsActive != nil {
		specialty.IsActive = *req.IsActive
	}

	if err := s.repo.Specialty.Update(ctx, specialty); err != nil {
		s.logger.Error("更新专科失败", zap.Error(err))
		return nil, err
	}
	return toSpecialtyResponse(specialty), nil
}

func (s *specialtyService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Specialty.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpecialtyNotFound
		}
		return err
	}

	count, err := s.repo.User.CountBySpecialtyID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSpecialtyInUse
	}

	if err := s.repo.Specialty.Delete(ctx, id); err != nil {
		s.logger.Error("删除专科失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func (s *specialtyService) checkNameFree(ctx context.Context, name, excludeID string) error {
	existing, err := s.repo.Specialty.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.SpecialtyID != excludeID {
		return ErrSpecialtyNameExists
	}
	return nil
}

// ── 响应映射 ──

func toSpecialtyResponse(sp *model.Specialty) *dto.SpecialtyResponse {
	return &dto.SpecialtyResponse{
		ID:          sp.SpecialtyID,
		Name:        sp.Name,
		Description: sp.Description,
		IsActive:    sp.IsActive,
		CreatedAt:   formatTime(sp.CreatedAt),
		UpdatedAt:   formatTime(sp.UpdatedAt),
	}
}
