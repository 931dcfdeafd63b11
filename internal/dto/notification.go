package dto

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	IsRead *bool  `form:"is_read"`
	Type   string `form:"type"    binding:"omitempty,oneof=shift swap leave emergency general"`
}

// CreateNotificationRequest 创建通知请求
type CreateNotificationRequest struct {
	UserID    string  `json:"user_id"    binding:"required,uuid"`
	Title     string  `json:"title"      binding:"required,max=200"`
	Message   string  `json:"message"    binding:"required"`
	Type      string  `json:"type"       binding:"required,oneof=shift swap leave emergency general"`
	RelatedID *string `json:"related_id" binding:"omitempty,uuid"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	UserName  *string `json:"userName"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	IsRead    bool    `json:"isRead"`
	RelatedID *string `json:"relatedId"`
	CreatedAt string  `json:"createdAt"`
}

// NotificationStatsResponse 通知统计响应
type NotificationStatsResponse struct {
	Total  int64            `json:"total"`
	Unread int64            `json:"unread"`
	Read   int64            `json:"read"`
	ByType map[string]int64 `json:"byType"`
}
