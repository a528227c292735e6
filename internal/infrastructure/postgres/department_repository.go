package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

const departmentColumns = `id, name, description, tag, company_id, lead_id, start_date, end_date, created_at, updated_at`

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para departamentos.
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un departamento nuevo.
func (r *DepartmentRepo) Create(ctx context.Context, department *entity.Department) error {
	query := `
		INSERT INTO departments (id, name, description, tag, company_id, lead_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		department.ID, department.Name, department.Description, department.Tag,
		department.CompanyID, department.LeadID, department.StartDate, department.EndDate,
		department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID acotado a la empresa.
func (r *DepartmentRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = $1 AND company_id = $2`
	var d entity.Department
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&d.ID, &d.Name, &d.Description, &d.Tag, &d.CompanyID, &d.LeadID,
		&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// Update actualiza un departamento existente.
func (r *DepartmentRepo) Update(ctx context.Context, department *entity.Department) error {
	query := `
		UPDATE departments SET name = $2, description = $3, tag = $4, lead_id = $5,
			start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		department.ID, department.Name, department.Description, department.Tag,
		department.LeadID, department.StartDate, department.EndDate, department.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// ListByCompany lista los departamentos de la empresa.
func (r *DepartmentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Tag, &d.CompanyID, &d.LeadID,
			&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina un departamento por ID.
func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
