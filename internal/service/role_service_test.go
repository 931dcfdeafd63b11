package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/model"
)

func setupTestRoleService(tr *testRepos) RoleService {
	return NewRoleService(tr.repo, zap.NewNop())
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Department Head", "department_head"},
		{"Doctor", "doctor"},
		{"Head  Nurse", "head_nurse"},
		{"On-Call Staff", "on_call_staff"},
		{"  admin  ", "admin"},
		{"ICU Nurse 2", "icu_nurse_2"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) 期望 %q，实际 %q", c.in, c.want, got)
		}
	}
}

func TestRoleService_Create_GeneratesSlug(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)

	resp, err := svc.Create(context.Background(), &dto.CreateRoleRequest{
		DisplayName: "Head Nurse",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "head_nurse" {
		t.Errorf("期望 Name=head_nurse，实际=%s", resp.Name)
	}
	if !resp.IsActive {
		t.Errorf("新建角色应为启用状态")
	}
}

func TestRoleService_GetByID(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)
	role := tr.addRole("head_nurse", "Head Nurse")

	resp, err := svc.GetByID(context.Background(), role.RoleID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if resp.Name != "head_nurse" || resp.DisplayName != "Head Nurse" {
		t.Errorf("期望 head_nurse/Head Nurse，实际=%s/%s", resp.Name, resp.DisplayName)
	}
}

func TestRoleService_GetByID_NotFound(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)

	_, err := svc.GetByID(context.Background(), "no-such-role")
	if !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望 ErrRoleNotFound，实际=%v", err)
	}
}

func TestRoleService_Create_NameExists(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)
	tr.addRole("head_nurse", "Head Nurse")

	// 不同展示名生成相同 slug 也算重名
	_, err := svc.Create(context.Background(), &dto.CreateRoleRequest{
		DisplayName: "Head  Nurse",
	})
	if !errors.Is(err, ErrRoleNameExists) {
		t.Errorf("期望 ErrRoleNameExists，实际=%v", err)
	}
}

func TestRoleService_Update_RenameFreeSlug(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)
	role := tr.addRole("head_nurse", "Head Nurse")

	resp, err := svc.Update(context.Background(), role.RoleID, &dto.UpdateRoleRequest{
		DisplayName: "Chief Nurse",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Name != "chief_nurse" {
		t.Errorf("期望 Name=chief_nurse，实际=%s", resp.Name)
	}
}

func TestRoleService_Delete_InUse(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)

	doctor := tr.addRole(model.RoleDoctor, "医生")
	tr.addUser("张三", doctor, nil)

	err := svc.Delete(context.Background(), doctor.RoleID)
	if !errors.Is(err, ErrRoleInUse) {
		t.Errorf("期望 ErrRoleInUse，实际=%v", err)
	}
}

func TestRoleService_Delete_Unused(t *testing.T) {
	tr := newTestRepos()
	svc := setupTestRoleService(tr)
	role := tr.addRole("temp_role", "临时角色")

	if err := svc.Delete(context.Background(), role.RoleID); err != nil {
		t.Fatalf("删除未使用角色应成功: %v", err)
	}
}
