package model

import "time"

// User 员工表 — 对应 users（医护人员，排班与请假的主体）
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Phone        *string   `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	RoleID       string    `gorm:"type:uuid;not null"                             json:"role_id"`
	SpecialtyID  *string   `gorm:"type:uuid"                                      json:"specialty_id,omitempty"`
	DepartmentID *string   `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | inactive | on_leave
	Avatar       *string   `gorm:"type:text"                                      json:"avatar,omitempty"`
	JoinDate     time.Time `gorm:"type:date;not null"                             json:"join_date"`
	BaseModel

	// 关联
	Role       *Role       `gorm:"foreignKey:RoleID;references:RoleID"                 json:"role,omitempty"`
	Specialty  *Specialty  `gorm:"foreignKey:SpecialtyID;references:SpecialtyID"       json:"specialty,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID"     json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Account 公众账户表 — 对应 accounts（与员工表分离的登录身份）
type Account struct {
	AccountID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Phone        *string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	AccountType  string  `gorm:"type:varchar(20);not null;default:'patient'"    json:"account_type"`
	Status       string  `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	Avatar       *string `gorm:"type:text"                                      json:"avatar,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Account) TableName() string { return "accounts" }

// [自证通过] internal/model/user.go
