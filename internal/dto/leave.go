package dto

// ── 请假模块 DTO ──

// LeaveListRequest 请假列表查询参数
type LeaveListRequest struct {
	Status    string `form:"status"     binding:"omitempty,oneof=pending approved rejected"`
	UserID    string `form:"user_id"    binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// CreateLeaveRequest 创建请假申请
type CreateLeaveRequest struct {
	UserID    string `json:"user_id"    binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"     binding:"required,max=500"`
}

// UpdateLeaveRequest 更新请假申请（部分字段）
type UpdateLeaveRequest struct {
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"reason"     binding:"omitempty,max=500"`
	Status    *string `json:"status"     binding:"omitempty,oneof=pending approved rejected"`
}

// RejectLeaveRequest 驳回请假申请（必须给出理由）
type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=500"`
}

// LeaveResponse 请假申请响应
type LeaveResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	UserName        *string `json:"userName"`
	UserRole        *string `json:"userRole"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approvedBy"`
	ApprovedByName  *string `json:"approvedByName"`
	ApprovedAt      *string `json:"approvedAt"`
	RejectionReason *string `json:"rejectionReason"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// LeaveStatsResponse 请假统计响应
type LeaveStatsResponse struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}
