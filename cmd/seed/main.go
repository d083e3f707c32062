package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/presence-backend-go/internal/config"
	"github.com/cmlabs-hris/presence-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	departmentService "github.com/cmlabs-hris/presence-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/presence-backend-go/internal/service/employee"
)

func main() {
	file := flag.String("file", "", "fixture YAML file (defaults to the built-in set)")
	flag.Parse()

	if err := run(*file); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(file string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	set, err := loadSet(file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	ids, err := fixtures.Seed(ctx,
		departmentService.NewDepartmentService(departmentRepo),
		employeeService.NewEmployeeService(employeeRepo, departmentRepo),
		set,
	)
	if err != nil {
		return err
	}

	slog.Info("Seeding completed", "departments", len(ids.DepartmentIDs), "new_employees", len(ids.EmployeeIDs))
	return nil
}

func loadSet(file string) (fixtures.Set, error) {
	if file == "" {
		return fixtures.Default()
	}
	f, err := os.Open(file)
	if err != nil {
		return fixtures.Set{}, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return fixtures.Load(f)
}
