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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, role, avatar, phone,
	is_active, company_id, department_id, start_date, end_date, points, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo. El email es único en todo el sistema.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, avatar, phone, is_active, company_id, department_id, start_date, end_date, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role,
		user.Avatar, user.Phone, user.IsActive, user.CompanyID, user.DepartmentID,
		user.StartDate, user.EndDate, user.Points, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByEmail obtiene un usuario por email (login).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `email = $1`, email)
}

func (r *UserRepo) getBy(ctx context.Context, where string, args ...any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.Avatar,
		&u.Phone, &u.IsActive, &u.CompanyID, &u.DepartmentID, &u.StartDate, &u.EndDate,
		&u.Points, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByIDAndCompany obtiene un usuario por ID acotado a la empresa.
func (r *UserRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	return r.getBy(ctx, `id = $1 AND company_id = $2`, id, companyID)
}

// Update actualiza un usuario existente. Points no se toca aquí: solo crece
// vía AddPoints.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, role = $4, avatar = $5, phone = $6,
			is_active = $7, department_id = $8, start_date = $9, end_date = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Role, user.Avatar, user.Phone,
		user.IsActive, user.DepartmentID, user.StartDate, user.EndDate, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByCompany lista usuarios de la empresa con paginación.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
			&u.Avatar, &u.Phone, &u.IsActive, &u.CompanyID, &u.DepartmentID, &u.StartDate,
			&u.EndDate, &u.Points, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// AddPoints incrementa el acumulador global de puntos del usuario.
func (r *UserRepo) AddPoints(ctx context.Context, id string, points int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET points = points + $2, updated_at = now() WHERE id = $1`,
		id, points,
	)
	if err != nil {
		return fmt.Errorf("add user points: %w", err)
	}
	return nil
}

// AssignDepartment fija department_id para un conjunto de usuarios de la empresa.
func (r *UserRepo) AssignDepartment(ctx context.Context, companyID string, userIDs []string, departmentID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET department_id = $3, updated_at = now() WHERE company_id = $1 AND id = ANY($2)`,
		companyID, userIDs, departmentID,
	)
	if err != nil {
		return fmt.Errorf("assign department: %w", err)
	}
	return nil
}

// ClearDepartment desasocia a todos los usuarios de un departamento.
func (r *UserRepo) ClearDepartment(ctx context.Context, departmentID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET department_id = NULL, updated_at = now() WHERE department_id = $1`,
		departmentID,
	)
	if err != nil {
		return fmt.Errorf("clear department: %w", err)
	}
	return nil
}
