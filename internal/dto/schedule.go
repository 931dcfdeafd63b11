package dto

// ── 排班模块 DTO ──

// ScheduleListRequest 排班列表查询参数
type ScheduleListRequest struct {
	StartDate    string `form:"start_date"    binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `form:"end_date"      binding:"omitempty,datetime=2006-01-02"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	UserID       string `form:"user_id"       binding:"omitempty,uuid"`
	Status       string `form:"status"        binding:"omitempty,oneof=scheduled confirmed swapped cancelled"`
}

// CreateScheduleRequest 创建排班请求
type CreateScheduleRequest struct {
	UserID       string `json:"user_id"       binding:"required,uuid"`
	Date         string `json:"date"          binding:"required,datetime=2006-01-02"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	ShiftType    string `json:"shift_type"    binding:"required,oneof=morning evening night"`
	Status       string `json:"status"        binding:"omitempty,oneof=scheduled confirmed swapped cancelled"`
	IsOnCall     *bool  `json:"is_on_call"`
	Notes        string `json:"notes"`
}

// UpdateScheduleRequest 更新排班请求（部分字段）
type UpdateScheduleRequest struct {
	UserID       *string `json:"user_id"       binding:"omitempty,uuid"`
	Date         *string `json:"date"          binding:"omitempty,datetime=2006-01-02"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	ShiftType    *string `json:"shift_type"    binding:"omitempty,oneof=morning evening night"`
	Status       *string `json:"status"        binding:"omitempty,oneof=scheduled confirmed swapped cancelled"`
	IsOnCall     *bool   `json:"is_on_call"`
	Notes        *string `json:"notes"`
}

// ScheduleResponse 排班条目响应
type ScheduleResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	UserName        *string `json:"userName"`
	UserRole        *string `json:"userRole"`
	Date            string  `json:"date"`
	DepartmentID    string  `json:"departmentId"`
	DepartmentName  *string `json:"departmentName"`
	DepartmentColor *string `json:"departmentColor"`
	ShiftType       string  `json:"shiftType"`
	Status          string  `json:"status"`
	IsOnCall        bool    `json:"isOnCall"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ScheduleStatsRequest 排班统计查询参数
type ScheduleStatsRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// ScheduleStatsResponse 排班统计响应
type ScheduleStatsResponse struct {
	TotalShifts     int64 `json:"totalShifts"`
	ConfirmedShifts int64 `json:"confirmedShifts"`
	OnCallShifts    int64 `json:"onCallShifts"`
	PendingShifts   int64 `json:"pendingShifts"`
}

// ScheduleCalendarRequest 个人排班日历（ICS）查询参数
type ScheduleCalendarRequest struct {
	UserID    string `form:"user_id"    binding:"required,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}
