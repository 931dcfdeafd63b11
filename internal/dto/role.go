package dto

// ── 角色/专科参照数据 DTO ──

// CreateRoleRequest 创建角色请求（name 由 display_name slug 化生成）
type CreateRoleRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateRoleRequest 更新角色请求
type UpdateRoleRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Description *string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// RoleResponse 角色响应
type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateSpecialtyRequest 创建专科请求
type CreateSpecialtyRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateSpecialtyRequest 更新专科请求
type UpdateSpecialtyRequest struct {
	Name        string  `json:"name"        binding:"required,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// SpecialtyResponse 专科响应
type SpecialtyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}
