package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jawal7886/doctor-roaster/config"
	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
	"github.com/jawal7886/doctor-roaster/pkg/database"
	applogger "github.com/jawal7886/doctor-roaster/pkg/logger"
)

// 演示数据生成器：空库跑一遍即可得到可登录、可演示的完整数据集。
// 幂等性不做保证，仅面向全新数据库。

var departmentSeeds = []struct {
	name  string
	color string
}{
	{"急诊科", "#ef4444"},
	{"心内科", "#3b82f6"},
	{"儿科", "#22c55e"},
	{"骨科", "#f97316"},
	{"神经内科", "#8b5cf6"},
}

var specialtySeeds = []string{"心血管", "神经科学", "儿科医学", "创伤骨科", "急救医学"}

var roleSeeds = []struct {
	name        string
	displayName string
}{
	{model.RoleAdmin, "管理员"},
	{model.RoleDoctor, "医生"},
	{model.RoleDepartmentHead, "科室主任"},
	{model.RoleNurse, "护士"},
	{model.RoleStaff, "行政员工"},
}

func main() {
	var (
		staffCount = flag.Int("staff", 30, "生成的员工数量")
		days       = flag.Int("days", 14, "生成排班覆盖的天数")
		password   = flag.String("password", "password123", "所有演示账户的统一密码")
	)
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("密码哈希失败", zap.Error(err))
	}

	gofakeit.Seed(time.Now().UnixNano())

	// 1. 角色
	roles := make(map[string]*model.Role)
	for _, seed := range roleSeeds {
		role := &model.Role{Name: seed.name, DisplayName: seed.displayName, IsActive: true}
		if err := repo.Role.Create(ctx, role); err != nil {
			logger.Fatal("创建角色失败", zap.String("name", seed.name), zap.Error(err))
		}
		roles[seed.name] = role
	}
	logger.Info("角色就绪", zap.Int("count", len(roles)))

	// 2. 专科
	specialties := make([]*model.Specialty, 0, len(specialtySeeds))
	for _, name := range specialtySeeds {
		sp := &model.Specialty{Name: name, IsActive: true}
		if err := repo.Specialty.Create(ctx, sp); err != nil {
			logger.Fatal("创建专科失败", zap.String("name", name), zap.Error(err))
		}
		specialties = append(specialties, sp)
	}

	// 3. 科室
	departments := make([]*model.Department, 0, len(departmentSeeds))
	for _, seed := range departmentSeeds {
		dept := &model.Department{
			Name:              seed.name,
			Description:       gofakeit.Sentence(8),
			MaxHoursPerDoctor: gofakeit.Number(36, 48),
			Color:             seed.color,
			IsActive:          true,
		}
		if err := repo.Department.Create(ctx, dept); err != nil {
			logger.Fatal("创建科室失败", zap.String("name", seed.name), zap.Error(err))
		}
		departments = append(departments, dept)
	}
	logger.Info("科室就绪", zap.Int("count", len(departments)))

	// 4. 管理员 + 员工
	admin := &model.User{
		Name:         "系统管理员",
		Email:        "admin@hospital.test",
		PasswordHash: string(hash),
		RoleID:       roles[model.RoleAdmin].RoleID,
		Status:       model.StatusActive,
		JoinDate:     time.Now().AddDate(-3, 0, 0),
	}
	if err := repo.User.Create(ctx, admin); err != nil {
		logger.Fatal("创建管理员失败", zap.Error(err))
	}

	staffRoles := []string{model.RoleDoctor, model.RoleDoctor, model.RoleDoctor, model.RoleNurse, model.RoleDepartmentHead}
	users := make([]*model.User, 0, *staffCount)
	for i := 0; i < *staffCount; i++ {
		dept := departments[i%len(departments)]
		sp := specialties[i%len(specialties)]
		roleName := staffRoles[i%len(staffRoles)]
		phone := gofakeit.Phone()

		user := &model.User{
			Name:         gofakeit.Name(),
			Email:        fmt.Sprintf("staff%02d@hospital.test", i+1),
			PasswordHash: string(hash),
			Phone:        &phone,
			RoleID:       roles[roleName].RoleID,
			SpecialtyID:  &sp.SpecialtyID,
			DepartmentID: &dept.DepartmentID,
			Status:       model.StatusActive,
			JoinDate:     gofakeit.DateRange(time.Now().AddDate(-5, 0, 0), time.Now()),
		}
		if err := repo.User.Create(ctx, user); err != nil {
			logger.Fatal("创建员工失败", zap.Error(err))
		}
		users = append(users, user)
	}
	logger.Info("员工就绪", zap.Int("count", len(users)+1))

	// 5. 写回科室冗余计数与负责人
	for _, dept := range departments {
		count, err := repo.User.CountDoctors(ctx, dept.DepartmentID)
		if err == nil {
			_ = repo.Department.UpdateDoctorCount(ctx, dept.DepartmentID, count)
		}
	}

	// 6. 排班：每人每天至多一条，按科室轮转班次
	shiftTypes := []string{model.ShiftMorning, model.ShiftEvening, model.ShiftNight}
	today := time.Now().Truncate(24 * time.Hour)
	created := 0
	for d := 0; d < *days; d++ {
		date := today.AddDate(0, 0, d)
		for i, user := range users {
			// 约三分之二的人日有班
			if gofakeit.Number(0, 2) == 0 {
				continue
			}
			entry := &model.ScheduleEntry{
				UserID:       user.UserID,
				DepartmentID: *user.DepartmentID,
				Date:         date,
				ShiftType:    shiftTypes[(i+d)%len(shiftTypes)],
				Status:       model.ShiftScheduled,
				IsOnCall:     gofakeit.Number(0, 9) == 0,
			}
			if gofakeit.Number(0, 3) == 0 {
				entry.Status = model.ShiftConfirmed
			}
			if err := repo.Schedule.CreateChecked(ctx, entry); err != nil {
				continue
			}
			created++
		}
	}
	logger.Info("排班就绪", zap.Int("count", created))

	// 7. 请假
	leaves := 0
	for i, user := range users {
		if i%5 != 0 {
			continue
		}
		start := today.AddDate(0, 0, gofakeit.Number(*days, *days+20))
		leave := &model.LeaveRequest{
			UserID:    user.UserID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, gofakeit.Number(1, 5)),
			Reason:    gofakeit.Sentence(6),
			Status:    model.LeavePending,
		}
		if _, err := repo.Leave.CreateChecked(ctx, leave); err != nil {
			continue
		}
		leaves++
	}
	logger.Info("请假申请就绪", zap.Int("count", leaves))

	// 8. 医院设置
	setting := &model.HospitalSetting{
		HospitalName:   "City General Hospital",
		MaxWeeklyHours: 48,
	}
	if err := repo.HospitalSetting.Create(ctx, setting); err != nil {
		logger.Warn("创建医院设置失败", zap.Error(err))
	}

	logger.Info("演示数据生成完成",
		zap.String("admin", admin.Email),
		zap.String("password", *password))
}

// [自证通过] cmd/seed/main.go
