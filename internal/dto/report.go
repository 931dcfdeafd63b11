package dto

// ── 报表模块 DTO ──

// ReportRangeRequest 报表时间范围参数（缺省值由 Service 层补充）
type ReportRangeRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// ReportExportRequest 报表导出参数
type ReportExportRequest struct {
	ReportType string `form:"report_type" binding:"omitempty,oneof=department_duty_hours staff_attendance leave_summary"`
	StartDate  string `form:"start_date"  binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date"    binding:"omitempty,datetime=2006-01-02"`
	Format     string `form:"format"      binding:"omitempty,oneof=csv xlsx"`
}

// OverviewResponse 总览统计
type OverviewResponse struct {
	TotalDutyHours int64   `json:"totalDutyHours"`
	ShiftsThisWeek int64   `json:"shiftsThisWeek"`
	StaffOnLeave   int64   `json:"staffOnLeave"`
	CoverageRate   float64 `json:"coverageRate"`
}

// DepartmentDutyHoursRow 科室工时报表行
type DepartmentDutyHoursRow struct {
	DepartmentID    string  `json:"departmentId"`
	DepartmentName  string  `json:"departmentName"`
	DepartmentColor string  `json:"departmentColor"`
	Doctors         int64   `json:"doctors"`
	MaxHours        int64   `json:"maxHours"`
	UsedHours       int64   `json:"usedHours"`
	Coverage        float64 `json:"coverage"`
}

// StaffAttendanceRow 员工出勤报表行
type StaffAttendanceRow struct {
	UserID          string  `json:"userId"`
	UserName        string  `json:"userName"`
	UserRole        string  `json:"userRole"`
	DepartmentName  string  `json:"departmentName"`
	ScheduledShifts int64   `json:"scheduledShifts"`
	CompletedShifts int64   `json:"completedShifts"`
	CancelledShifts int64   `json:"cancelledShifts"`
	LeaveDays       int64   `json:"leaveDays"`
	AttendanceRate  float64 `json:"attendanceRate"`
}

// LeaveSummaryResponse 请假汇总报表
type LeaveSummaryResponse struct {
	Summary      LeaveStatsResponse    `json:"summary"`
	ByDepartment []LeaveSummaryDeptRow `json:"byDepartment"`
}

// LeaveSummaryDeptRow 按科室的请假汇总行
type LeaveSummaryDeptRow struct {
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	TotalLeaves    int64  `json:"totalLeaves"`
	ApprovedLeaves int64  `json:"approvedLeaves"`
}
