package dto

// ── 员工模块 DTO ──

// UserListRequest 员工列表查询参数
type UserListRequest struct {
	Role         string `form:"role"          binding:"omitempty,max=100"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Status       string `form:"status"        binding:"omitempty,oneof=active inactive on_leave"`
	Search       string `form:"search"        binding:"omitempty,max=100"`
}

// CreateUserRequest 创建员工请求
type CreateUserRequest struct {
	Name         string  `json:"name"          binding:"required,max=100"`
	Email        string  `json:"email"         binding:"required,email"`
	Password     string  `json:"password"      binding:"required,min=6"`
	Phone        *string `json:"phone"         binding:"omitempty,max=20"`
	RoleID       string  `json:"role_id"       binding:"required,uuid"`
	SpecialtyID  *string `json:"specialty_id"  binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Status       string  `json:"status"        binding:"omitempty,oneof=active inactive on_leave"`
	Avatar       *string `json:"avatar"`
	JoinDate     string  `json:"join_date"     binding:"omitempty,datetime=2006-01-02"`
}

// UpdateUserRequest 更新员工请求（部分字段）
type UpdateUserRequest struct {
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	Email        *string `json:"email"         binding:"omitempty,email"`
	Password     *string `json:"password"      binding:"omitempty,min=6"`
	Phone        *string `json:"phone"         binding:"omitempty,max=20"`
	RoleID       *string `json:"role_id"       binding:"omitempty,uuid"`
	SpecialtyID  *string `json:"specialty_id"  binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Status       *string `json:"status"        binding:"omitempty,oneof=active inactive on_leave"`
	Avatar       *string `json:"avatar"`
}

// UserResponse 员工详情响应（前端字段为 camelCase）
type UserResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	Role           *string `json:"role"`
	RoleID         string  `json:"roleId"`
	RoleDisplay    *string `json:"roleDisplay"`
	Specialty      *string `json:"specialty"`
	SpecialtyID    *string `json:"specialtyId"`
	DepartmentID   *string `json:"departmentId"`
	DepartmentName *string `json:"departmentName"`
	Status         string  `json:"status"`
	Avatar         *string `json:"avatar"`
	JoinDate       string  `json:"joinDate"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}
