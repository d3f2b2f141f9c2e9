package employees

import (
	"context"
	"sort"

	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/models"
)

// EmployeeRepository reads the employee master, which this service never writes.
type EmployeeRepository interface {
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	GetActiveEmployees(ctx context.Context) ([]models.Employee, error)
}

type employeeRepositoryImpl struct {
	tables store.TableStore
}

func NewRepository(tables store.TableStore) EmployeeRepository {
	return &employeeRepositoryImpl{tables: tables}
}

func (r *employeeRepositoryImpl) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	master, err := store.Load(ctx, r.tables, store.EmployeeMaster)
	if err != nil {
		return nil, err
	}

	idx := master.Index("employee_id", id)
	if idx < 0 {
		return nil, custom_error.NewLookupError(store.EmployeeMaster, "employee_id", id)
	}
	employee := models.EmployeeFromRow(master.Rows[idx])
	return &employee, nil
}

// GetActiveEmployees lists employees who may hold items, ordered by name.
func (r *employeeRepositoryImpl) GetActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	master, err := store.Load(ctx, r.tables, store.EmployeeMaster)
	if err != nil {
		return nil, err
	}

	active := make([]models.Employee, 0, len(master.Rows))
	for _, row := range master.Rows {
		employee := models.EmployeeFromRow(row)
		if employee.EmploymentStatus == metadata.EmploymentActive {
			active = append(active, employee)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Name < active[j].Name
	})
	return active, nil
}
