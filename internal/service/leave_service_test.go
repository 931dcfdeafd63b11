package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

func setupTestLeaveService(tr *testRepos) LeaveService {
	notifier := NewNotificationService(tr.repo, zap.NewNop())
	return NewLeaveService(tr.repo, notifier, zap.NewNop())
}

// daysFromNow 相对今天的日期串，请假用例需保证开始日期不早于今天
func daysFromNow(d int) string {
	return time.Now().AddDate(0, 0, d).Format(DateLayout)
}

func TestLeaveService_Create_Success(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	admin := tr.addRole(model.RoleAdmin, "管理员")
	dept := tr.addDept("心内科")
	user := tr.addUser("张三", doctor, dept)
	adminUser := tr.addUser("王管", admin, nil)

	resp, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(9),
		EndDate:   daysFromNow(11),
		Reason:    "探亲",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Status != model.LeavePending {
		t.Errorf("新申请状态应为 pending，实际=%s", resp.Status)
	}

	// 申请人收到提交回执
	own, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: user.UserID})
	if len(own) != 1 || own[0].Type != model.NotifyLeave {
		t.Errorf("期望申请人收到 1 条 leave 通知，实际=%d 条", len(own))
	}

	// 管理员收到审批通知
	adminNotifies, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: adminUser.UserID})
	if len(adminNotifies) != 1 {
		t.Errorf("期望管理员收到 1 条通知，实际=%d", len(adminNotifies))
	}
}

func TestLeaveService_Create_DateOrder(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	user := tr.addUser("张三", doctor, nil)

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(12),
		EndDate:   daysFromNow(10),
		Reason:    "探亲",
	})
	if !errors.Is(err, ErrLeaveDateOrder) {
		t.Errorf("期望 ErrLeaveDateOrder，实际=%v", err)
	}
}

func TestLeaveService_Create_PastStart(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	user := tr.addUser("张三", doctor, nil)

	// 开始日期早于今天的申请被拒绝
	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(-30),
		EndDate:   daysFromNow(-28),
		Reason:    "补登历史请假",
	})
	if !errors.Is(err, ErrLeaveStartPast) {
		t.Errorf("期望 ErrLeaveStartPast，实际=%v", err)
	}

	leaves, _ := tr.leaves.List(context.Background(), nil)
	if len(leaves) != 0 {
		t.Errorf("过去日期的申请不应入库，实际=%d 条", len(leaves))
	}
}

func TestLeaveService_Create_Overlap(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	user := tr.addUser("张三", doctor, nil)

	start, end := daysFromNow(9), daysFromNow(14)
	if _, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: start,
		EndDate:   end,
		Reason:    "探亲",
	}); err != nil {
		t.Fatalf("首次申请应成功: %v", err)
	}

	// 与待审申请日期相交
	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(13),
		EndDate:   daysFromNow(17),
		Reason:    "休假",
	})
	var overlap *LeaveOverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("期望 LeaveOverlapError，实际=%v", err)
	}
	if overlap.Start != start || overlap.End != end {
		t.Errorf("重叠详情不符: %+v", overlap)
	}
}

func TestLeaveService_Create_RejectedDoesNotBlock(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	approver := tr.addUser("审批人", doctor, nil)
	user := tr.addUser("张三", doctor, nil)

	first, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(9),
		EndDate:   daysFromNow(11),
		Reason:    "探亲",
	})
	if err != nil {
		t.Fatalf("首次申请应成功: %v", err)
	}
	if _, err := svc.Reject(context.Background(), first.ID, approver.UserID,
		&dto.RejectLeaveRequest{RejectionReason: "排班紧张"}); err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}

	// 已驳回的申请不再占用日期
	if _, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(10),
		EndDate:   daysFromNow(12),
		Reason:    "补休",
	}); err != nil {
		t.Errorf("已驳回申请不应阻塞新申请: %v", err)
	}
}

func TestLeaveService_Approve(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	approver := tr.addUser("审批人", doctor, nil)
	user := tr.addUser("张三", doctor, nil)

	created, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(9),
		EndDate:   daysFromNow(11),
		Reason:    "探亲",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	baseline, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: user.UserID})

	resp, err := svc.Approve(context.Background(), created.ID, approver.UserID)
	if err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}
	if resp.Status != model.LeaveApproved {
		t.Errorf("期望状态 approved，实际=%s", resp.Status)
	}
	if resp.ApprovedBy == nil || *resp.ApprovedBy != approver.UserID {
		t.Errorf("期望 ApprovedBy=%s，实际=%v", approver.UserID, resp.ApprovedBy)
	}

	// 申请人收到批准通知
	notifies, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: user.UserID})
	if len(notifies) != len(baseline)+1 {
		t.Errorf("期望申请人新增 1 条通知，实际 %d -> %d", len(baseline), len(notifies))
	}
}

func TestLeaveService_Approve_Idempotent(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	approver := tr.addUser("审批人", doctor, nil)
	user := tr.addUser("张三", doctor, nil)

	created, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(9),
		EndDate:   daysFromNow(11),
		Reason:    "探亲",
	})

	if _, err := svc.Approve(context.Background(), created.ID, approver.UserID); err != nil {
		t.Fatalf("首次 Approve 应成功: %v", err)
	}
	before, _ := tr.notifications.List(context.Background(), nil)

	// 重复批准不报错、不重发通知
	resp, err := svc.Approve(context.Background(), created.ID, "another-approver")
	if err != nil {
		t.Fatalf("重复 Approve 应幂等返回: %v", err)
	}
	if resp.ApprovedBy == nil || *resp.ApprovedBy != approver.UserID {
		t.Errorf("重复批准不应覆盖原审批人，实际=%v", resp.ApprovedBy)
	}
	after, _ := tr.notifications.List(context.Background(), nil)
	if len(after) != len(before) {
		t.Errorf("重复批准不应重发通知: %d -> %d", len(before), len(after))
	}
}

func TestLeaveService_Reject(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	approver := tr.addUser("审批人", doctor, nil)
	user := tr.addUser("张三", doctor, nil)

	created, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID:    user.UserID,
		StartDate: daysFromNow(9),
		EndDate:   daysFromNow(11),
		Reason:    "探亲",
	})

	resp, err := svc.Reject(context.Background(), created.ID, approver.UserID,
		&dto.RejectLeaveRequest{RejectionReason: "排班紧张"})
	if err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}
	if resp.Status != model.LeaveRejected {
		t.Errorf("期望状态 rejected，实际=%s", resp.Status)
	}
	if resp.RejectionReason == nil || *resp.RejectionReason != "排班紧张" {
		t.Errorf("期望驳回理由被记录，实际=%v", resp.RejectionReason)
	}
}

func TestLeaveService_Stats(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestLeaveService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	approver := tr.addUser("审批人", doctor, nil)
	u1 := tr.addUser("张三", doctor, nil)
	u2 := tr.addUser("李四", doctor, nil)

	a, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: u1.UserID, StartDate: daysFromNow(9), EndDate: daysFromNow(11), Reason: "探亲",
	})
	b, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: u2.UserID, StartDate: daysFromNow(9), EndDate: daysFromNow(10), Reason: "休假",
	})
	if _, err := svc.Approve(context.Background(), a.ID, approver.UserID); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}
	if _, err := svc.Reject(context.Background(), b.ID, approver.UserID,
		&dto.RejectLeaveRequest{RejectionReason: "排班紧张"}); err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.Approved != 1 || stats.Rejected != 1 || stats.Pending != 0 || stats.Total != 2 {
		t.Errorf("统计不符: %+v", stats)
	}
}
