package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/presence-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
	departmentService "github.com/cmlabs-hris/presence-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/presence-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var locker lock.Locker
	switch cfg.Lock.Backend {
	case "redis":
		client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("Error connecting to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		locker = lock.NewRedis(client, cfg.Lock.TTL)
	default:
		locker = lock.NewLocal()
	}
	slog.Info("Employee lock ready", "backend", cfg.Lock.Backend)

	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	txManager := postgresql.NewTransactionManager(db)

	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		locker,
		attendanceRepo,
		employeeRepo,
		departmentSvc,
		cfg.App.Location,
	)

	router := appHTTP.NewRouter(
		logger,
		appHTTP.RouterOptions{
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    cfg.SlogLevel(),
		},
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
