package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/model"
)

// NotificationListFilters 通知列表过滤条件
type NotificationListFilters struct {
	UserID string
	IsRead *bool
	Type   string
}

// NotificationStats 通知统计聚合
type NotificationStats struct {
	Total  int64
	Unread int64
	ByType map[string]int64
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateBatch(ctx context.Context, ns []model.Notification) error
	List(ctx context.Context, filters *NotificationListFilters) ([]model.Notification, error)
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	Delete(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	ClearRead(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*NotificationStats, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ns, 100).Error
}

func (r *notificationRepo) List(ctx context.Context, filters *NotificationListFilters) ([]model.Notification, error) {
	query := r.db.WithContext(ctx).Preload("User")

	if filters != nil {
		if filters.UserID != "" {
			query = query.Where("user_id = ?", filters.UserID)
		}
		if filters.IsRead != nil {
			query = query.Where("is_read = ?", *filters.IsRead)
		}
		if filters.Type != "" {
			query = query.Where("type = ?", filters.Type)
		}
	}

	var notifications []model.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", id).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("notification_id = ?", id).
		Delete(&model.Notification{}).Error
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) ClearRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, true).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) Stats(ctx context.Context, userID string) (*NotificationStats, error) {
	stats := &NotificationStats{ByType: make(map[string]int64)}
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&model.Notification{})
		if userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		return query
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, err
	}

	rows := []struct {
		Type  string
		Count int64
	}{}
	if err := base().Select("type, COUNT(*) AS count").Group("type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
	}
	return stats, nil
}
