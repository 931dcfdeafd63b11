package dto

// ── 医院设置 DTO ──

// UpdateSettingRequest 更新医院设置请求
type UpdateSettingRequest struct {
	HospitalName   string  `json:"hospital_name"    binding:"required,max=255"`
	Address        *string `json:"address"`
	ContactNumber  *string `json:"contact_number"   binding:"omitempty,max=20"`
	MaxWeeklyHours *int    `json:"max_weekly_hours" binding:"omitempty,min=1,max=168"`
	HospitalLogo   *string `json:"hospital_logo"` // Base64 字符串，存储后端不关心其内容
}

// SettingResponse 医院设置响应
type SettingResponse struct {
	ID             string  `json:"id"`
	HospitalName   string  `json:"hospitalName"`
	Address        *string `json:"address"`
	ContactNumber  *string `json:"contactNumber"`
	MaxWeeklyHours int     `json:"maxWeeklyHours"`
	HospitalLogo   *string `json:"hospitalLogo"`
	UpdatedAt      string  `json:"updatedAt"`
}
