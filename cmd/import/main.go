// Command import replays attendance logs exported by the previous system.
//
//	import -url https://old.example.com/api/attendance-log
//	import page-1.json page-2.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/config"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
	departmentService "github.com/cmlabs-hris/presence-backend-go/internal/service/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/service/importer"
)

func main() {
	var (
		startURL = flag.String("url", "", "first attendance-log page to fetch; next links are followed")
		maxPages = flag.Int("max-pages", 0, "stop after this many pages (0 = all)")
		timeout  = flag.Duration("timeout", 30*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *startURL == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: import -url <page url> | import <file>...")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *startURL, *maxPages, *timeout, flag.Args()); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, startURL string, maxPages int, timeout time.Duration, files []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 4})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	// The API may run alongside; with LOCK_BACKEND=redis both share one lock.
	var locker lock.Locker = lock.NewLocal()
	if cfg.Lock.Backend == "redis" {
		client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		locker = lock.NewRedis(client, cfg.Lock.TTL)
	}

	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	attendanceSvc := attendanceService.NewAttendanceService(
		postgresql.NewTransactionManager(db),
		locker,
		attendanceRepo,
		employeeRepo,
		departmentService.NewDepartmentService(departmentRepo),
		cfg.App.Location,
	)
	im := importer.NewImporter(employeeRepo, attendanceSvc)

	var total importer.Summary
	if startURL != "" {
		sum, err := im.ImportURL(ctx, &http.Client{Timeout: timeout}, startURL, maxPages)
		total.Add(sum)
		if err != nil {
			return err
		}
	}
	for _, path := range files {
		sum, err := im.ImportFile(ctx, path)
		total.Add(sum)
		if err != nil {
			return err
		}
		slog.Info("Imported file", "path", path, "imported", sum.Imported, "skipped", sum.Skipped)
	}

	slog.Info("Import completed", "imported", total.Imported, "skipped", total.Skipped)
	return nil
}
