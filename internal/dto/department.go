package dto

// ── 科室模块 DTO ──

// CreateDepartmentRequest 创建科室请求
type CreateDepartmentRequest struct {
	Name              string  `json:"name"                 binding:"required,max=100"`
	Description       string  `json:"description"`
	HeadID            *string `json:"head_id"              binding:"omitempty,uuid"`
	MaxHoursPerDoctor int     `json:"max_hours_per_doctor" binding:"required,min=1"`
	Color             string  `json:"color"                binding:"required,max=7"`
}

// UpdateDepartmentRequest 更新科室请求（部分字段）
type UpdateDepartmentRequest struct {
	Name              *string `json:"name"                 binding:"omitempty,max=100"`
	Description       *string `json:"description"`
	HeadID            *string `json:"head_id"              binding:"omitempty,uuid"`
	MaxHoursPerDoctor *int    `json:"max_hours_per_doctor" binding:"omitempty,min=1"`
	Color             *string `json:"color"                binding:"omitempty,max=7"`
	IsActive          *bool   `json:"is_active"`
}

// DepartmentResponse 科室详情响应
//
// doctorCount 为存储的冗余计数，actualDoctorCount 为按需重算值；
// 任何员工变更之后二者应一致。
type DepartmentResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	HeadID            *string `json:"headId"`
	HeadName          *string `json:"headName"`
	MaxHoursPerDoctor int     `json:"maxHoursPerDoctor"`
	DoctorCount       int     `json:"doctorCount"`
	ActualDoctorCount int64   `json:"actualDoctorCount"`
	Color             string  `json:"color"`
	IsActive          bool    `json:"isActive"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}
