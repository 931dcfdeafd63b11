package model

// HospitalSetting 医院全局设置表 — 对应 hospital_settings（单行表，首次读取时创建默认值）
type HospitalSetting struct {
	SettingID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"setting_id"`
	HospitalName   string  `gorm:"type:varchar(255);not null"                     json:"hospital_name"`
	Address        *string `gorm:"type:text"                                      json:"address,omitempty"`
	ContactNumber  *string `gorm:"type:varchar(20)"                               json:"contact_number,omitempty"`
	MaxWeeklyHours int     `gorm:"not null;default:48"                            json:"max_weekly_hours"`
	HospitalLogo   *string `gorm:"type:text"                                      json:"hospital_logo,omitempty"`
	BaseModel
}

// TableName 指定表名
func (HospitalSetting) TableName() string { return "hospital_settings" }
