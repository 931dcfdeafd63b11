package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
)

func setupTestUserService(tr *testRepos) UserService {
	notifier := NewNotificationService(tr.repo, zap.NewNop())
	return NewUserService(tr.repo, notifier, zap.NewNop())
}

func TestUserService_Create_Success(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	dept := tr.addDept("心内科")

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:         "张三",
		Email:        "zhangsan@hospital.test",
		Password:     "secret123",
		RoleID:       doctor.RoleID,
		DepartmentID: &dept.DepartmentID,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "张三" {
		t.Errorf("期望 Name=张三，实际=%s", resp.Name)
	}
	if resp.Status != model.StatusActive {
		t.Errorf("缺省状态应为 active，实际=%s", resp.Status)
	}

	// 医生入科后冗余计数被重算
	if tr.depts.depts[dept.DepartmentID].DoctorCount != 1 {
		t.Errorf("期望科室 DoctorCount=1，实际=%d", tr.depts.depts[dept.DepartmentID].DoctorCount)
	}

	// 新员工收到欢迎通知
	notifies, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: resp.ID})
	if len(notifies) != 1 || notifies[0].Type != model.NotifyGeneral {
		t.Errorf("期望新员工收到 1 条 general 通知，实际=%d 条", len(notifies))
	}
}

func TestUserService_Create_EmailExists(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	existing := tr.addUser("张三", doctor, nil)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:     "李四",
		Email:    existing.Email,
		Password: "secret123",
		RoleID:   doctor.RoleID,
	})
	if !errors.Is(err, ErrUserEmailExists) {
		t.Errorf("期望 ErrUserEmailExists，实际=%v", err)
	}
}

func TestUserService_Create_RoleNotFound(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:     "张三",
		Email:    "zhangsan@hospital.test",
		Password: "secret123",
		RoleID:   "missing-role",
	})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望 ErrRoleNotFound，实际=%v", err)
	}
}

func TestUserService_Update_MoveDepartmentRecountsBoth(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	cardio := tr.addDept("心内科")
	neuro := tr.addDept("神经科")

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:         "张三",
		Email:        "zhangsan@hospital.test",
		Password:     "secret123",
		RoleID:       doctor.RoleID,
		DepartmentID: &cardio.DepartmentID,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if tr.depts.depts[cardio.DepartmentID].DoctorCount != 1 {
		t.Fatalf("前置条件失败：心内科 DoctorCount 应为 1")
	}

	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateUserRequest{
		DepartmentID: &neuro.DepartmentID,
	}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	// 转科后新老科室都重算
	if tr.depts.depts[cardio.DepartmentID].DoctorCount != 0 {
		t.Errorf("期望心内科 DoctorCount=0，实际=%d", tr.depts.depts[cardio.DepartmentID].DoctorCount)
	}
	if tr.depts.depts[neuro.DepartmentID].DoctorCount != 1 {
		t.Errorf("期望神经科 DoctorCount=1，实际=%d", tr.depts.depts[neuro.DepartmentID].DoctorCount)
	}
}

func TestUserService_Update_DeactivateRecounts(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	dept := tr.addDept("心内科")

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:         "张三",
		Email:        "zhangsan@hospital.test",
		Password:     "secret123",
		RoleID:       doctor.RoleID,
		DepartmentID: &dept.DepartmentID,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	inactive := model.StatusInactive
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateUserRequest{
		Status: &inactive,
	}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	// 停用的医生不计入科室医生数
	if tr.depts.depts[dept.DepartmentID].DoctorCount != 0 {
		t.Errorf("停用后 DoctorCount 应为 0，实际=%d", tr.depts.depts[dept.DepartmentID].DoctorCount)
	}
}

func TestUserService_Delete_Recounts(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	admin := tr.addRole(model.RoleAdmin, "管理员")
	adminUser := tr.addUser("王五", admin, nil)
	dept := tr.addDept("心内科")

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:         "张三",
		Email:        "zhangsan@hospital.test",
		Password:     "secret123",
		RoleID:       doctor.RoleID,
		DepartmentID: &dept.DepartmentID,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("删除后查询应返回 ErrUserNotFound，实际=%v", err)
	}
	if tr.depts.depts[dept.DepartmentID].DoctorCount != 0 {
		t.Errorf("删除后 DoctorCount 应为 0，实际=%d", tr.depts.depts[dept.DepartmentID].DoctorCount)
	}

	// 管理员收到员工移除通知
	notifies, _ := tr.notifications.List(context.Background(),
		&repository.NotificationListFilters{UserID: adminUser.UserID})
	if len(notifies) != 1 {
		t.Errorf("期望管理员收到 1 条通知，实际=%d", len(notifies))
	}
}

func TestUserService_List_Filters(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestUserService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	nurse := tr.addRole(model.RoleNurse, "护士")
	dept := tr.addDept("心内科")
	tr.addUser("张三", doctor, dept)
	tr.addUser("李四", nurse, dept)

	got, err := svc.List(context.Background(), &dto.UserListRequest{Role: model.RoleDoctor})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(got) != 1 || got[0].Name != "张三" {
		t.Errorf("按角色过滤结果不符: %+v", got)
	}
}
