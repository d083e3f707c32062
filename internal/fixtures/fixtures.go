// Package fixtures holds the seed data for a fresh installation.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Set is a fixture file: departments with the employees that belong to them.
type Set struct {
	Departments []Department `yaml:"departments"`
}

type Department struct {
	Name            string     `yaml:"name"`
	MaxClockInTime  string     `yaml:"max_clock_in_time"`
	MaxClockOutTime string     `yaml:"max_clock_out_time"`
	Employees       []Employee `yaml:"employees"`
}

type Employee struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Position string `yaml:"position"`
}

// Default returns the built-in fixture set.
func Default() (Set, error) {
	return Load(bytes.NewReader(defaultsYAML))
}

// Load parses a fixture file. Unknown keys are rejected.
func Load(r io.Reader) (Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var set Set
	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return Set{}, nil
		}
		return Set{}, fmt.Errorf("fixtures: parse yaml: %w", err)
	}
	return set, nil
}

// SeededDataIDs maps fixture names to stored IDs.
type SeededDataIDs struct {
	DepartmentIDs map[string]string // department name -> id
	EmployeeIDs   map[string]string // email -> id
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		DepartmentIDs: make(map[string]string),
		EmployeeIDs:   make(map[string]string),
	}
}

// Seed stores set through the services so the usual validation applies.
// Departments matched by name and employees matched by email are left as
// they are, which makes seeding repeatable.
func Seed(ctx context.Context, departments department.DepartmentService, employees employee.EmployeeService, set Set) (*SeededDataIDs, error) {
	ids := NewSeededDataIDs()

	existing, err := departments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	for _, d := range existing {
		ids.DepartmentIDs[d.Name] = d.ID
	}

	for _, d := range set.Departments {
		if _, ok := ids.DepartmentIDs[d.Name]; !ok {
			created, err := departments.Create(ctx, department.CreateDepartmentRequest{
				Name:            d.Name,
				MaxClockInTime:  d.MaxClockInTime,
				MaxClockOutTime: d.MaxClockOutTime,
			})
			if err != nil {
				return nil, fmt.Errorf("seed department %q: %w", d.Name, err)
			}
			ids.DepartmentIDs[d.Name] = created.ID
			slog.Info("Seeded department", "name", d.Name, "id", created.ID)
		}

		for _, e := range d.Employees {
			created, err := employees.CreateEmployee(ctx, employee.CreateEmployeeRequest{
				Name:         e.Name,
				Email:        e.Email,
				Position:     e.Position,
				DepartmentID: ids.DepartmentIDs[d.Name],
			})
			if errors.Is(err, employee.ErrEmailExists) {
				slog.Info("Employee already seeded", "email", e.Email)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("seed employee %q: %w", e.Email, err)
			}
			ids.EmployeeIDs[created.Email] = created.ID
		}
	}

	return ids, nil
}
