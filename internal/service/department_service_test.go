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

func setupTestDepartmentService(tr *testRepos) DepartmentService {
	notifier := NewNotificationService(tr.repo, zap.NewNop())
	return NewDepartmentService(tr.repo, notifier, zap.NewNop())
}

func TestDepartmentService_Create_Success(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	resp, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:              "心内科",
		MaxHoursPerDoctor: 40,
		Color:             "#ef4444",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "心内科" {
		t.Errorf("期望 Name=心内科，实际=%s", resp.Name)
	}
	if !resp.IsActive {
		t.Errorf("新建科室应为启用状态")
	}
}

func TestDepartmentService_Create_NameExists(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)
	tr.addDept("心内科")

	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:              "心内科",
		MaxHoursPerDoctor: 40,
		Color:             "#ef4444",
	})
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际=%v", err)
	}
}

func TestDepartmentService_Create_HeadNotified(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	head := tr.addUser("张三", doctor, nil)

	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:              "心内科",
		HeadID:            &head.UserID,
		MaxHoursPerDoctor: 40,
		Color:             "#ef4444",
	}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	notifies, _ := tr.notifications.List(context.Background(), nil)
	if len(notifies) != 1 || notifies[0].UserID != head.UserID {
		t.Errorf("期望负责人收到任命通知，实际=%d 条", len(notifies))
	}
}

func TestDepartmentService_Create_NotifiesAdmins(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	admin := tr.addRole(model.RoleAdmin, "管理员")
	adminUser := tr.addUser("王五", admin, nil)

	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:              "心内科",
		MaxHoursPerDoctor: 40,
		Color:             "#3b82f6",
	}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	notifies, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: adminUser.UserID})
	if len(notifies) != 1 {
		t.Errorf("期望管理员收到 1 条通知，实际=%d", len(notifies))
	}
}

func TestDepartmentService_Update_NotifiesMembers(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	dept := tr.addDept("心内科")
	member := tr.addUser("张三", doctor, dept)

	name := "心血管内科"
	if _, err := svc.Update(context.Background(), dept.DepartmentID,
		&dto.UpdateDepartmentRequest{Name: &name}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	notifies, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: member.UserID})
	if len(notifies) != 1 {
		t.Errorf("期望科室成员收到 1 条更新通知，实际=%d", len(notifies))
	}
}

func TestDepartmentService_Delete_NotifiesStaffAndAdmins(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	admin := tr.addRole(model.RoleAdmin, "管理员")
	dept := tr.addDept("心内科")
	staff1 := tr.addUser("张三", doctor, dept)
	staff2 := tr.addUser("李四", doctor, dept)
	adminUser := tr.addUser("王五", admin, nil)

	if err := svc.Delete(context.Background(), dept.DepartmentID); err != nil {
		t.Fatalf("删除有员工的科室应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), dept.DepartmentID); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("删除后查询应返回 ErrDepartmentNotFound，实际=%v", err)
	}

	// 科室成员和管理员各收到一条通知
	for _, u := range []*model.User{staff1, staff2, adminUser} {
		notifies, _ := tr.notifications.List(context.Background(),
			&repository.NotificationListFilters{UserID: u.UserID})
		if len(notifies) != 1 {
			t.Errorf("期望 %s 收到 1 条通知，实际=%d", u.Name, len(notifies))
		}
	}
}

func TestDepartmentService_Delete_Empty(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)
	dept := tr.addDept("心内科")

	if err := svc.Delete(context.Background(), dept.DepartmentID); err != nil {
		t.Fatalf("删除空科室应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), dept.DepartmentID); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("删除后查询应返回 ErrDepartmentNotFound，实际=%v", err)
	}
}

func TestDepartmentService_RecountAll(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	nurse := tr.addRole(model.RoleNurse, "护士")
	dept := tr.addDept("心内科")
	tr.addUser("张三", doctor, dept)
	tr.addUser("李四", doctor, dept)
	tr.addUser("王五", nurse, dept) // 护士不计入医生数

	// 存量计数为 0，与实际不符
	updated, err := svc.RecountAll(context.Background())
	if err != nil {
		t.Fatalf("RecountAll 应成功: %v", err)
	}
	if updated != 1 {
		t.Errorf("期望更新 1 个科室，实际=%d", updated)
	}
	if tr.depts.depts[dept.DepartmentID].DoctorCount != 2 {
		t.Errorf("期望 DoctorCount=2，实际=%d", tr.depts.depts[dept.DepartmentID].DoctorCount)
	}

	// 计数已一致时不再写回
	updated, err = svc.RecountAll(context.Background())
	if err != nil {
		t.Fatalf("RecountAll 应成功: %v", err)
	}
	if updated != 0 {
		t.Errorf("计数一致时期望更新 0 个科室，实际=%d", updated)
	}
}

func TestDepartmentService_AssignMissingHeads_PrefersHeadRole(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	headRole := tr.addRole(model.RoleDepartmentHead, "科室主任")
	dept := tr.addDept("心内科")
	tr.addUser("张三", doctor, dept)
	chief := tr.addUser("李主任", headRole, dept)

	assigned, err := svc.AssignMissingHeads(context.Background())
	if err != nil {
		t.Fatalf("AssignMissingHeads 应成功: %v", err)
	}
	if assigned != 1 {
		t.Errorf("期望指派 1 个负责人，实际=%d", assigned)
	}
	got := tr.depts.depts[dept.DepartmentID].HeadID
	if got == nil || *got != chief.UserID {
		t.Errorf("期望负责人为科室主任 %s，实际=%v", chief.UserID, got)
	}
}

func TestDepartmentService_AssignMissingHeads_FallbackSeniorDoctor(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	dept := tr.addDept("心内科")
	junior := tr.addUser("小张", doctor, dept)
	senior := tr.addUser("老李", doctor, dept)
	junior.JoinDate = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	senior.JoinDate = time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.AssignMissingHeads(context.Background()); err != nil {
		t.Fatalf("AssignMissingHeads 应成功: %v", err)
	}

	// 无科室主任角色时取入职最早的活跃医生
	got := tr.depts.depts[dept.DepartmentID].HeadID
	if got == nil || *got != senior.UserID {
		t.Errorf("期望负责人为最资深医生 %s，实际=%v", senior.UserID, got)
	}
}

func TestDepartmentService_AssignMissingHeads_KeepsExisting(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	dept := tr.addDept("心内科")
	existing := tr.addUser("张三", doctor, dept)
	dept.HeadID = &existing.UserID
	tr.addUser("李四", doctor, dept)

	assigned, err := svc.AssignMissingHeads(context.Background())
	if err != nil {
		t.Fatalf("AssignMissingHeads 应成功: %v", err)
	}
	if assigned != 0 {
		t.Errorf("已有负责人的科室不应被指派，实际=%d", assigned)
	}
}

func TestDepartmentService_Response_ActualDoctorCount(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestDepartmentService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	dept := tr.addDept("心内科")
	tr.addUser("张三", doctor, dept)

	// 存量 doctorCount 为 0，动态口径应为 1
	resp, err := svc.GetByID(context.Background(), dept.DepartmentID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if resp.ActualDoctorCount != 1 {
		t.Errorf("期望 ActualDoctorCount=1，实际=%d", resp.ActualDoctorCount)
	}
}
