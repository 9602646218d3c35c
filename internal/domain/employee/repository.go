package employee

import (
	"context"
)

// EmployeeRepository is the employee directory. The ledger only needs the
// existence check behind GetByID; the rest backs directory management.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID returns ErrEmployeeNotFound when no such employee exists.
	GetByID(ctx context.Context, id string) (Employee, error)

	List(ctx context.Context) ([]Employee, error)
}
