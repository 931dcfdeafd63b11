package dto

// ── 认证模块 DTO ──

// RegisterRequest 公众账户注册请求
type RegisterRequest struct {
	Name                 string  `json:"name"                  binding:"required,max=100"`
	Email                string  `json:"email"                 binding:"required,email"`
	Password             string  `json:"password"              binding:"required,min=8"`
	PasswordConfirmation string  `json:"password_confirmation" binding:"required,eqfield=Password"`
	Phone                *string `json:"phone"                 binding:"omitempty,max=20"`
}

// LoginRequest 登录请求（员工与公众账户共用）
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	User  interface{} `json:"user"` // StaffIdentityResponse 或 AccountIdentityResponse
	Token string      `json:"token"`
}

// StaffIdentityResponse 员工身份负载（user_type=staff）
type StaffIdentityResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Role         *string `json:"role"`
	RoleID       string  `json:"roleId"`
	RoleDisplay  *string `json:"roleDisplay"`
	Specialty    *string `json:"specialty"`
	SpecialtyID  *string `json:"specialtyId"`
	DepartmentID *string `json:"departmentId"`
	Status       string  `json:"status"`
	Avatar       *string `json:"avatar"`
	UserType     string  `json:"user_type"` // 恒为 "staff"
}

// AccountIdentityResponse 公众账户身份负载（user_type=account）
type AccountIdentityResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	AccountType string  `json:"account_type"`
	Status      string  `json:"status"`
	Avatar      *string `json:"avatar"`
	UserType    string  `json:"user_type"` // 恒为 "account"
}

// UpdateAccountProfileRequest 公众账户资料更新请求（字段均可选）
type UpdateAccountProfileRequest struct {
	Name                 *string `json:"name"                  binding:"omitempty,min=1,max=100"`
	Email                *string `json:"email"                 binding:"omitempty,email"`
	Phone                *string `json:"phone"                 binding:"omitempty,max=20"`
	Avatar               *string `json:"avatar"`
	Password             string  `json:"password"              binding:"omitempty,min=8"`
	PasswordConfirmation string  `json:"password_confirmation" binding:"omitempty,eqfield=Password"`
}
