package employee

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/department"
)

type Employee struct {
	ID           string
	Name         string
	Email        string
	Position     string
	DepartmentID string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined on reads; nil when the query did not load it.
	Department *department.Department
}
